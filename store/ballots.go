// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/medal-awards/models"
)

// BallotStore implements Store as a single JSON array of BallotRecord kept in
// one KV slot. Every write rewrites the whole array.
type BallotStore struct {
	kv     KV
	key    string
	clock  Clock
	logger *slog.Logger

	// serializes read-modify-write cycles within this process
	mu sync.Mutex
}

var _ Store = (*BallotStore)(nil)

// New creates a BallotStore on kv. An empty key uses DefaultKey, a nil clock
// the wall clock and a nil logger slog.Default().
func New(kv KV, key string, clock Clock, logger *slog.Logger) *BallotStore {
	if key == "" {
		key = DefaultKey
	}
	if clock == nil {
		clock = SystemClock
	}
	return &BallotStore{
		kv:     kv,
		key:    key,
		clock:  clock,
		logger: resolveLogger(logger),
	}
}

// NewMemory returns a BallotStore backed by a fresh MemoryKV
func NewMemory(clock Clock) *BallotStore {
	return New(NewMemoryKV(), DefaultKey, clock, nil)
}

// load returns the stored records, one per code. backendErr is set only when
// the KV itself failed; an undecodable payload is logged and treated as empty.
func (s *BallotStore) load(ctx context.Context) (records []models.BallotRecord, backendErr error) {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("ballot store read failed",
			"event", "storage_unavailable",
			"key", s.key,
			"error", err,
		)
		return nil, err
	}
	if !found || len(raw) == 0 {
		return nil, nil
	}

	if err := json.Unmarshal(raw, &records); err != nil {
		s.logger.Warn("ballot store payload unreadable, treating as empty",
			"event", "storage_unavailable",
			"key", s.key,
			"error", err,
		)
		return nil, nil
	}
	return s.dedupe(records), nil
}

// dedupe keeps the last record of a code that appears more than once, at the
// position of its first occurrence. Only a hand-edited payload can hold
// duplicates; the next write persists the cleaned array.
func (s *BallotStore) dedupe(records []models.BallotRecord) []models.BallotRecord {
	index := make(map[string]int, len(records))
	out := records[:0]
	for _, r := range records {
		if i, seen := index[r.Code]; seen {
			s.logger.Warn("duplicate ballot in payload, keeping the last",
				"event", "storage_duplicate",
				"key", s.key,
				"code", r.Code,
			)
			out[i] = r
			continue
		}
		index[r.Code] = len(out)
		out = append(out, r)
	}
	return out
}

func (s *BallotStore) save(ctx context.Context, records []models.BallotRecord) error {
	if records == nil {
		records = []models.BallotRecord{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode ballots: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		s.logger.Error("ballot store write failed",
			"event", "storage_unavailable",
			"key", s.key,
			"error", err,
		)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *BallotStore) HasVoted(ctx context.Context, code string) bool {
	_, ok := s.Get(ctx, code)
	return ok
}

func (s *BallotStore) Get(ctx context.Context, code string) (models.BallotRecord, bool) {
	records, _ := s.load(ctx)
	for _, r := range records {
		if r.Code == code {
			return r, true
		}
	}
	return models.BallotRecord{}, false
}

func (s *BallotStore) GetAll(ctx context.Context) []models.BallotRecord {
	records, _ := s.load(ctx)
	if records == nil {
		return []models.BallotRecord{}
	}
	return records
}

// Submit keeps the last write for a code
func (s *BallotStore) Submit(ctx context.Context, code string, votes models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	record := models.BallotRecord{
		Code:      code,
		Timestamp: s.clock.Now().UnixMilli(),
		Votes:     votes.Clone(),
	}

	replaced := false
	for i := range records {
		if records[i].Code == code {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	} else {
		s.logger.Warn("ballot overwritten", "code", code)
	}

	return s.save(ctx, records)
}

// Delete is a no-op for a code without a ballot
func (s *BallotStore) Delete(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	kept := records[:0]
	removed := false
	for _, r := range records {
		if r.Code == code {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return nil
	}
	return s.save(ctx, kept)
}

func (s *BallotStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, s.key); err != nil {
		s.logger.Error("ballot store reset failed",
			"event", "storage_unavailable",
			"key", s.key,
			"error", err,
		)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
