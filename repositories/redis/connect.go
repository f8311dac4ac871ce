package redis

import (
	// Go Internal Packages
	"context"
	"fmt"

	// External Packages
	"github.com/redis/go-redis/v9"
)

// Connect connects to the redis server at addr, pings it and returns the client.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}
