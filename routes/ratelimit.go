/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the process-wide narrative rate limit.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// NewRateLimiter returns a limiter for the config. A non-positive rate
// disables limiting.
func NewRateLimiter(cfg RateLimiterConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}

	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
}

// RateLimit rejects requests once the limiter runs out of tokens. It guards
// handlers that call the narrative service.
func RateLimit(limiter *rate.Limiter) flamego.Handler {
	return func(c flamego.Context) {
		if !limiter.Allow() {
			requestLogger.Warn("rate limit exceeded",
				append([]interface{}{"event", "rate_limited"}, baseRequestFields(c)...)...)
			http.Error(c.ResponseWriter(), "rate limit exceeded", http.StatusTooManyRequests)

			return
		}

		c.Next()
	}
}
