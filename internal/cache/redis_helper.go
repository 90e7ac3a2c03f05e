package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/andresuchdata/wastewise/backend-go/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	defaultReportTTL  = time.Minute
	redisDialTimeout  = 3 * time.Second
	redisIOTimeout    = 2 * time.Second
	redisPingTimeout  = 5 * time.Second
	defaultRedisHost  = "127.0.0.1"
	defaultRedisPort  = "6379"
	analyticsPoolSize = 10
)

// dialAnalyticsRedis opens a client for the analytics cache and checks it
// answers PING. The client is closed again when the ping fails.
func dialAnalyticsRedis(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	opts, err := analyticsRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("analytics cache: ping %s: %w", opts.Addr, err)
	}

	return client, nil
}

// reportTTL is how long a generated report is served from cache.
func reportTTL(cfg config.CacheConfig) time.Duration {
	if cfg.AnalyticsTTLSeconds <= 0 {
		return defaultReportTTL
	}
	return time.Duration(cfg.AnalyticsTTLSeconds) * time.Second
}

// analyticsRedisOptions reads REDIS_URL when set, else host, port and db.
// Timeouts and pool size apply either way.
func analyticsRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	var opts *redis.Options
	if cfg.RedisURL != "" {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("analytics cache: invalid redis url: %w", err)
		}
		opts = parsed
	} else {
		host, port := cfg.RedisHost, cfg.RedisPort
		if host == "" {
			host = defaultRedisHost
		}
		if port == "" {
			port = defaultRedisPort
		}
		opts = &redis.Options{
			Addr:     net.JoinHostPort(host, port),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
	}

	opts.DialTimeout = redisDialTimeout
	opts.ReadTimeout = redisIOTimeout
	opts.WriteTimeout = redisIOTimeout
	opts.PoolSize = analyticsPoolSize

	return opts, nil
}

// unlinkMatching walks the keyspace with SCAN and unlinks every key matching
// pattern, batchSize keys per pipeline. It returns the number of keys removed.
func unlinkMatching(ctx context.Context, client *redis.Client, pattern string, batchSize int64) (int, error) {
	var (
		removed int
		batch   = make([]string, 0, batchSize)
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		cmds, err := client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Unlink(ctx, batch...)
			return nil
		})
		if err != nil {
			return fmt.Errorf("analytics cache: unlink: %w", err)
		}
		for _, cmd := range cmds {
			if n, ok := cmd.(*redis.IntCmd); ok {
				removed += int(n.Val())
			}
		}
		batch = batch[:0]
		return nil
	}

	iter := client.Scan(ctx, 0, pattern, batchSize).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if int64(len(batch)) >= batchSize {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("analytics cache: scan %s: %w", pattern, err)
	}

	return removed, flush()
}
