// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielhkuo/medal-awards/auth"
)

// idleLimiter is how long a client's bucket survives without requests
const idleLimiter = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter throttles login attempts per client IP, so access codes cannot
// be guessed by brute force. Clients are keyed by a salted IP hash of the TCP
// peer; forwarding headers are only honoured when trustProxy is set.
type LoginLimiter struct {
	perMinute  int
	salt       string
	trustProxy bool
	now        func() time.Time

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewLoginLimiter allows perMinute attempts per client, with bursts of the
// same size. Set trustProxy only behind a reverse proxy that overwrites
// X-Forwarded-For.
func NewLoginLimiter(perMinute int, salt string, trustProxy bool) *LoginLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &LoginLimiter{
		perMinute:  perMinute,
		salt:       salt,
		trustProxy: trustProxy,
		now:        time.Now,
		clients:    make(map[string]*clientLimiter),
	}
}

func (l *LoginLimiter) clientIP(r *http.Request) string {
	if l.trustProxy {
		return GetClientIP(r)
	}
	return RemoteIP(r)
}

// Allow reports whether the client behind key may attempt a login now
func (l *LoginLimiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > idleLimiter {
			delete(l.clients, k)
		}
	}

	c, ok := l.clients[key]
	if !ok {
		every := rate.Every(time.Minute / time.Duration(l.perMinute))
		c = &clientLimiter{limiter: rate.NewLimiter(every, l.perMinute)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Limit rejects requests over the limit with 429
func (l *LoginLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := auth.HashIP(l.clientIP(r), l.salt)
		if !l.Allow(client) {
			slog.Warn("login rate limited", "client", client)
			w.Header().Set("Retry-After", "60")
			ErrorResponse(w, http.StatusTooManyRequests, "Too many login attempts, try again in a minute")
			return
		}
		next(w, r)
	}
}
