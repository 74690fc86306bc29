package ratelimit

import "context"

// NoOpLimiter admits every request. Used when no Redis address is configured.
type NoOpLimiter struct{}

func NewNoOpLimiter() *NoOpLimiter {
	return &NoOpLimiter{}
}

func (*NoOpLimiter) Allow(context.Context, string) (bool, error) {
	return true, nil
}

func (*NoOpLimiter) Close() error {
	return nil
}
