package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const rateLimitNamespace = "examportal:ratelimit"

type Client struct {
	*redis.Client
}

func NewClient(ctx context.Context, redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{client}, nil
}

func (c *Client) Healthy(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}

// RateLimitKey namespaces a rate limit bucket, e.g. RateLimitKey("login", ip).
func RateLimitKey(scope, subject string) string {
	return fmt.Sprintf("%s:%s:%s", rateLimitNamespace, scope, subject)
}
