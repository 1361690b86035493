// Package cache provides the shared redis connection.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"context"
	"crypto/tls"
	"fmt"

	"skrytki/platform/config"

	"github.com/redis/go-redis/v9"
)

// ParseOptions turns REDIS_URL into client options, optionally relaxing TLS
// verification for managed instances with self-signed certificates.
func ParseOptions(cfg config.RedisConfig) (*redis.Options, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if cfg.GetRedisTLSInsecure() {
			clone.InsecureSkipVerify = true
		}
		opt.TLSConfig = clone
	} else if cfg.GetRedisTLSInsecure() {
		opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return opt, nil
}

// NewClient connects to redis and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opt, err := ParseOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
