package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
	"github.com/andresuchdata/wastewise/backend-go/internal/engine"
)

var fixedNow = time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC) // a Saturday

func newTestForecastService() *ForecastService {
	return NewForecastService(engine.SeededSources(7), engine.FixedClock(fixedNow), nil)
}

// memoryCache is an in-process AnalyticsCache for service tests.
type memoryCache struct {
	mu      sync.Mutex
	reports map[string]*domain.AnalyticsReport
	gets    int
	sets    int
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{reports: make(map[string]*domain.AnalyticsReport)}
}

func (c *memoryCache) key(dataType domain.DataType, timeRange domain.TimeRange) string {
	return string(dataType) + ":" + string(timeRange)
}

func (c *memoryCache) GetReport(ctx context.Context, dataType domain.DataType, timeRange domain.TimeRange) (*domain.AnalyticsReport, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return nil, false, errors.New("cache unavailable")
	}
	report, ok := c.reports[c.key(dataType, timeRange)]
	return report, ok, nil
}

func (c *memoryCache) SetReport(ctx context.Context, report *domain.AnalyticsReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.reports[c.key(report.DataType, report.TimeRange)] = report
	return nil
}

func (c *memoryCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = make(map[string]*domain.AnalyticsReport)
	return nil
}

func (c *memoryCache) Close() error { return nil }
