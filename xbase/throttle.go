/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package xbase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/beefsack/go-rate"
	"github.com/pkg/errors"
)

type quota struct {
	limit int
	rate  *rate.RateLimiter
}

// Throttle limits the shard queries per second, 0 means no limit.
type Throttle struct {
	quota atomic.Pointer[quota]
}

// NewThrottle creates the new throttle.
func NewThrottle(limit int) *Throttle {
	throttle := &Throttle{}
	throttle.Set(limit)
	return throttle
}

// Wait blocks until the quota of the current second allows one more
// query or ctx is done.
// Waiters already blocked keep the quota they started with.
func (throttle *Throttle) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	q := throttle.quota.Load()
	if q == nil || q.rate == nil {
		return nil
	}
	for {
		ok, remaining := q.rate.Try()
		if ok {
			return nil
		}
		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.WithStack(ctx.Err())
		case <-timer.C:
		}
	}
}

// Set replaces the quota.
func (throttle *Throttle) Set(limit int) {
	q := &quota{limit: limit}
	if limit > 0 {
		q.rate = rate.New(limit, time.Second)
	}
	throttle.quota.Store(q)
}

// Limits returns the limits of the throttle.
func (throttle *Throttle) Limits() int {
	if q := throttle.quota.Load(); q != nil {
		return q.limit
	}
	return 0
}
