// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginProtection rate-limits login attempts per client IP so a
// single host cannot hammer the credential check.
type LoginProtection struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter

	rateLimit rate.Limit
	burst     int
	maxAge    time.Duration
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	// RateLimit is login attempts per second per IP.
	RateLimit float64
	// Burst is the maximum burst size per IP.
	Burst int
}

// DefaultLoginProtectionConfig returns sensible defaults: one attempt
// per two seconds with a burst of five.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{RateLimit: 0.5, Burst: 5}
}

// NewLoginProtection creates a new login protection instance.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 0.5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	return &LoginProtection{
		limiters:  make(map[string]*ipLimiter),
		rateLimit: rate.Limit(cfg.RateLimit),
		burst:     cfg.Burst,
		maxAge:    time.Hour,
	}
}

// Middleware rejects over-limit login attempts with 429.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !lp.allow(ip) {
				slog.Warn("login rate limit exceeded", "ip", ip)
				http.Error(w, "Too many login attempts, slow down", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (lp *LoginProtection) allow(ip string) bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := time.Now()
	l, ok := lp.limiters[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(lp.rateLimit, lp.burst)}
		lp.limiters[ip] = l
	}
	l.lastSeen = now

	// Opportunistic sweep of stale limiters.
	if len(lp.limiters) > 1024 {
		for k, v := range lp.limiters {
			if now.Sub(v.lastSeen) > lp.maxAge {
				delete(lp.limiters, k)
			}
		}
	}

	return l.limiter.Allow()
}

// clientIP extracts the remote host without the port. chi's RealIP
// middleware has already folded X-Forwarded-For into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
