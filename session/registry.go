// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/medal-awards/auth"
	"github.com/danielhkuo/medal-awards/roster"
	"github.com/danielhkuo/medal-awards/store"
)

var (
	ErrSessionNotFound   = errors.New("session not found or expired")
	ErrSessionInProgress = errors.New("access code is already voting in another session")
)

// DefaultTTL is how long an idle session is kept
const DefaultTTL = 2 * time.Hour

type entry struct {
	mu      sync.Mutex // serializes calls on machine
	machine *Machine
	code    string // voting code held by this session, empty for admin

	lastSeen time.Time // guarded by Registry.mu
}

// Registry holds the live sessions of the HTTP surface, keyed by opaque token.
// Calls on one session run one at a time. A voting code is held by at most one
// live session until that session is closed or expires.
type Registry struct {
	roster *roster.Roster
	store  store.Store
	logger *slog.Logger
	clock  store.Clock
	ttl    time.Duration

	mu       sync.Mutex
	sessions map[string]*entry
	voting   map[string]string // code -> token
}

// NewRegistry creates an empty registry. ttl <= 0 uses DefaultTTL.
func NewRegistry(r *roster.Roster, s store.Store, ttl time.Duration, clock store.Clock, logger *slog.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = store.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		roster:   r,
		store:    s,
		logger:   logger,
		clock:    clock,
		ttl:      ttl,
		sessions: make(map[string]*entry),
		voting:   make(map[string]string),
	}
}

// Open logs in with code on a new machine and registers it only if the login
// succeeds. A voting code already held by a live session is refused with
// ErrSessionInProgress.
func (reg *Registry) Open(ctx context.Context, code string) (token, state string, err error) {
	m := NewMachine(reg.roster, reg.store, reg.logger)
	if err := m.Login(ctx, code); err != nil {
		return "", "", err
	}

	token = auth.GenerateSessionToken()
	now := reg.clock.Now()

	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.pruneLocked(now)
	if voter := m.Code(); voter != "" {
		if _, busy := reg.voting[voter]; busy {
			reg.logger.Warn("second session refused", "code", voter)
			return "", "", ErrSessionInProgress
		}
		reg.voting[voter] = token
	}
	reg.sessions[token] = &entry{machine: m, code: m.Code(), lastSeen: now}

	return token, m.State(), nil
}

// With runs fn on the machine behind token while holding the session lock
func (reg *Registry) With(token string, fn func(m *Machine) error) error {
	if err := auth.ValidateSessionToken(token); err != nil {
		return ErrSessionNotFound
	}

	now := reg.clock.Now()

	reg.mu.Lock()
	e, ok := reg.sessions[token]
	if ok && now.Sub(e.lastSeen) > reg.ttl {
		reg.removeLocked(token, e)
		ok = false
	}
	if ok {
		e.lastSeen = now
	}
	reg.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.machine)
}

// Close forgets a session. Unknown tokens are ignored.
func (reg *Registry) Close(token string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if e, ok := reg.sessions[token]; ok {
		reg.removeLocked(token, e)
	}
}

// Len reports the number of live sessions
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

func (reg *Registry) pruneLocked(now time.Time) {
	for token, e := range reg.sessions {
		if now.Sub(e.lastSeen) > reg.ttl {
			reg.removeLocked(token, e)
		}
	}
}

// removeLocked drops a session and releases its voting code
func (reg *Registry) removeLocked(token string, e *entry) {
	delete(reg.sessions, token)
	if e.code != "" && reg.voting[e.code] == token {
		delete(reg.voting, e.code)
	}
}
