// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/medal-awards/models"
)

// DefaultKey is the slot the ballots have always been saved under
const DefaultKey = "solo_ommini_awards_db_2025"

var ErrStorageUnavailable = errors.New("storage unavailable")

// Store keeps at most one BallotRecord per access code.
//
// Reads never fail: an unreadable backend reads as an empty store. Writes
// report ErrStorageUnavailable so a ballot is never dropped silently.
type Store interface {
	HasVoted(ctx context.Context, code string) bool
	// Submit inserts the ballot for code, or replaces the one already there.
	Submit(ctx context.Context, code string, votes models.Draft) error
	Get(ctx context.Context, code string) (models.BallotRecord, bool)
	GetAll(ctx context.Context) []models.BallotRecord
	Delete(ctx context.Context, code string) error
	Reset(ctx context.Context) error
}

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock
var SystemClock Clock = systemClock{}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
