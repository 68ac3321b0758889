package service

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/examcell/exam-portal-server/internal/redis"
)

// rateLimitScript is a Lua script for sliding window rate limiting
var rateLimitScript = goredis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)

if count >= limit then
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local resetAt = now + window
    if #oldest >= 2 then
        resetAt = tonumber(oldest[2]) + window
    end
    return {0, resetAt}
end

redis.call('ZADD', key, now, now .. '-' .. math.random())
redis.call('EXPIRE', key, window + 10)

return {1, now + window}
`)

// RateLimiter is a Redis-backed sliding window limiter keyed by scope and subject.
type RateLimiter struct {
	client goredis.Scripter
	scope  string
	limit  int
	window time.Duration
}

func NewRateLimiter(client goredis.Scripter, scope string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		scope:  scope,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) Scope() string {
	return rl.scope
}

// Allow records one attempt for subject. When Redis is unavailable the
// attempt is denied.
func (rl *RateLimiter) Allow(ctx context.Context, subject string) (allowed bool, resetAt time.Time) {
	now := time.Now().Unix()
	key := redis.RateLimitKey(rl.scope, subject)

	result, err := rateLimitScript.Run(
		ctx,
		rl.client,
		[]string{key},
		now,
		int64(rl.window.Seconds()),
		rl.limit,
	).Int64Slice()

	if err != nil {
		log.Warn().
			Err(err).
			Str("scope", rl.scope).
			Msg("rate limit check failed, denying request")
		return false, time.Now().Add(rl.window)
	}

	if len(result) != 2 {
		log.Warn().Str("scope", rl.scope).Msg("unexpected rate limit result, denying request")
		return false, time.Now().Add(rl.window)
	}

	return result[0] == 1, time.Unix(result[1], 0)
}
