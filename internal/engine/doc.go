// Package engine holds the prediction and optimization calculators: demand,
// shelf life, inventory levels, environmental/SDG impact and the analytics
// aggregations built on them.
//
// Every calculator is a pure function of its request. Randomness enters only
// through an injected Source, so a fixed seed reproduces any call.
package engine
