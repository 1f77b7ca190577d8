package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskmanager/internal/core/ports"
)

// slidingWindowScript keeps one sorted-set member per accepted request,
// scored by its arrival time in milliseconds. It returns
// {allowed, remaining, oldestScore}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window_start = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local window_ms = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local current = redis.call('ZCARD', key)

if current < limit then
	local counter = redis.call('INCR', key .. ':seq')
	redis.call('ZADD', key, now, now .. ':' .. counter)
	local ttl = math.ceil(window_ms / 1000)
	redis.call('EXPIRE', key, ttl)
	redis.call('EXPIRE', key .. ':seq', ttl)
	return {1, limit - current - 1, 0}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldest_score = 0
if oldest and #oldest >= 2 then
	oldest_score = tonumber(oldest[2])
end
return {0, 0, oldest_score}
`)

// SlidingWindowLimiter allows at most limit requests per key in any window.
type SlidingWindowLimiter struct {
	client    redis.Scripter
	keyPrefix string
	limit     int
	window    time.Duration
	now       func() time.Time
}

var _ ports.RateLimiter = (*SlidingWindowLimiter)(nil)

func NewSlidingWindowLimiter(client redis.Scripter, keyPrefix string, limit int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		client:    client,
		keyPrefix: keyPrefix,
		limit:     limit,
		window:    window,
		now:       time.Now,
	}
}

func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (ports.RateLimitResult, error) {
	now := l.now()
	nowMs := now.UnixMilli()
	windowMs := l.window.Milliseconds()

	values, err := slidingWindowScript.Run(
		ctx, l.client, []string{l.keyPrefix + key},
		nowMs, nowMs-windowMs, l.limit, windowMs,
	).Int64Slice()
	if err != nil {
		return ports.RateLimitResult{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(values) != 3 {
		return ports.RateLimitResult{}, fmt.Errorf("rate limit script: unexpected reply length %d", len(values))
	}

	return resultFromReply(values, nowMs, windowMs), nil
}

func resultFromReply(values []int64, nowMs, windowMs int64) ports.RateLimitResult {
	if values[0] == 1 {
		return ports.RateLimitResult{Allowed: true, Remaining: int(values[1])}
	}

	retryAfter := time.Duration(windowMs) * time.Millisecond
	if oldest := values[2]; oldest > 0 {
		retryAfter = time.Duration(oldest+windowMs-nowMs) * time.Millisecond
	}
	if retryAfter < 0 {
		retryAfter = 0
	}
	return ports.RateLimitResult{Allowed: false, Remaining: 0, RetryAfter: retryAfter}
}
