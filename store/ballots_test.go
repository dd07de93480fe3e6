// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/medal-awards/models"
)

var fixedNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() Clock {
	return ClockFunc(func() time.Time { return fixedNow })
}

func votesFor(gold, silver, bronze string) models.Draft {
	return models.Draft{
		"ommino": {Gold: gold, Silver: silver, Bronze: bronze},
	}
}

// flakyKV fails reads or writes on demand
type flakyKV struct {
	*MemoryKV
	mu        sync.Mutex
	failRead  bool
	failWrite bool
}

var errBackend = errors.New("disk on fire")

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	fail := f.failRead
	f.mu.Unlock()
	if fail {
		return nil, false, errBackend
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *flakyKV) Put(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failWrite
	f.mu.Unlock()
	if fail {
		return errBackend
	}
	return f.MemoryKV.Put(ctx, key, value)
}

func (f *flakyKV) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failWrite
	f.mu.Unlock()
	if fail {
		return errBackend
	}
	return f.MemoryKV.Remove(ctx, key)
}

func TestSubmitAndHasVoted(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(fixedClock())

	assert.False(t, s.HasVoted(ctx, "1111"))
	require.NoError(t, s.Submit(ctx, "1111", votesFor("1", "2", "3")))
	assert.True(t, s.HasVoted(ctx, "1111"))
	assert.False(t, s.HasVoted(ctx, "2222"))

	rec, ok := s.Get(ctx, "1111")
	require.True(t, ok)
	assert.Equal(t, "1111", rec.Code)
	assert.Equal(t, fixedNow.UnixMilli(), rec.Timestamp)
	assert.Equal(t, votesFor("1", "2", "3"), rec.Votes)

	_, ok = s.Get(ctx, "2222")
	assert.False(t, ok)
}

func TestSubmit_CopiesVotes(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(fixedClock())

	votes := votesFor("1", "2", "3")
	require.NoError(t, s.Submit(ctx, "1111", votes))
	votes["ommino"] = models.Slots{Gold: "9"}

	rec, _ := s.Get(ctx, "1111")
	assert.Equal(t, "1", rec.Votes["ommino"].Gold)
}

// Documented last-write-wins: a second submit for a code replaces the first.
func TestSubmit_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(fixedClock())

	require.NoError(t, s.Submit(ctx, "1111", votesFor("1", "2", "3")))
	require.NoError(t, s.Submit(ctx, "2222", votesFor("4", "5", "6")))
	require.NoError(t, s.Submit(ctx, "1111", votesFor("3", "2", "1")))

	all := s.GetAll(ctx)
	require.Len(t, all, 2)

	count := 0
	for _, r := range all {
		if r.Code == "1111" {
			count++
			assert.Equal(t, votesFor("3", "2", "1"), r.Votes)
		}
	}
	assert.Equal(t, 1, count)
}

func TestDelete_ReenablesVoting(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(fixedClock())

	require.NoError(t, s.Submit(ctx, "1111", votesFor("1", "2", "3")))
	require.NoError(t, s.Submit(ctx, "2222", votesFor("1", "2", "3")))
	require.NoError(t, s.Delete(ctx, "1111"))

	assert.False(t, s.HasVoted(ctx, "1111"))
	assert.True(t, s.HasVoted(ctx, "2222"))

	// absent code is a no-op
	require.NoError(t, s.Delete(ctx, "9999"))
	assert.Len(t, s.GetAll(ctx), 1)
}

func TestReset_IsTotal(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(fixedClock())

	codes := []string{"1111", "1112", "1113"}
	for _, c := range codes {
		require.NoError(t, s.Submit(ctx, c, votesFor("1", "2", "3")))
	}
	require.NoError(t, s.Reset(ctx))

	assert.Empty(t, s.GetAll(ctx))
	for _, c := range codes {
		assert.False(t, s.HasVoted(ctx, c), c)
	}

	// reset of an empty store is fine
	require.NoError(t, s.Reset(ctx))
}

func TestGetAll_IdempotentReads(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(fixedClock())

	assert.NotNil(t, s.GetAll(ctx))
	assert.Empty(t, s.GetAll(ctx))

	require.NoError(t, s.Submit(ctx, "1111", votesFor("1", "2", "3")))
	require.NoError(t, s.Submit(ctx, "2222", votesFor("2", "3", "1")))

	assert.Equal(t, s.GetAll(ctx), s.GetAll(ctx))
}

func TestPayloadFormat(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := New(kv, "", fixedClock(), nil)

	require.NoError(t, s.Submit(ctx, "1111", votesFor("1", "2", "3")))

	raw, found, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t,
		`[{"code":"1111","timestamp":1735732800000,"votes":{"ommino":{"gold":"1","silver":"2","bronze":"3"}}}]`,
		string(raw))

	// empty array after the last delete, not a missing slot
	require.NoError(t, s.Delete(ctx, "1111"))
	raw, found, err = kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestReadsExistingPayload(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, "custom", []byte(
		`[{"code":"3333","timestamp":42,"votes":{"bollito":{"gold":"7","silver":"8","bronze":"9"}}}]`)))

	s := New(kv, "custom", nil, nil)
	rec, ok := s.Get(ctx, "3333")
	require.True(t, ok)
	assert.Equal(t, int64(42), rec.Timestamp)
	assert.Equal(t, "7", rec.Votes["bollito"].Gold)
}

func TestDuplicateCodesInPayload(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, DefaultKey, []byte(`[
		{"code":"1111","timestamp":1,"votes":{"ommino":{"gold":"1","silver":"2","bronze":"3"}}},
		{"code":"2222","timestamp":2,"votes":{"ommino":{"gold":"4","silver":"5","bronze":"6"}}},
		{"code":"1111","timestamp":3,"votes":{"ommino":{"gold":"7","silver":"8","bronze":"9"}}}
	]`)))
	s := New(kv, DefaultKey, fixedClock(), nil)

	all := s.GetAll(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "1111", all[0].Code)
	assert.Equal(t, int64(3), all[0].Timestamp)
	assert.Equal(t, "7", all[0].Votes["ommino"].Gold)
	assert.Equal(t, "2222", all[1].Code)

	rec, ok := s.Get(ctx, "1111")
	require.True(t, ok)
	assert.Equal(t, int64(3), rec.Timestamp)

	// a submit replaces the single surviving record
	require.NoError(t, s.Submit(ctx, "1111", votesFor("4", "5", "6")))
	all = s.GetAll(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, fixedNow.UnixMilli(), all[0].Timestamp)

	// and delete leaves nothing behind for the code
	require.NoError(t, s.Delete(ctx, "1111"))
	assert.False(t, s.HasVoted(ctx, "1111"))
	assert.Len(t, s.GetAll(ctx), 1)
}

func TestCorruptPayload_DegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, DefaultKey, []byte(`{not json`)))

	s := New(kv, DefaultKey, fixedClock(), nil)
	assert.Empty(t, s.GetAll(ctx))
	assert.False(t, s.HasVoted(ctx, "1111"))

	// a write replaces the unreadable payload
	require.NoError(t, s.Submit(ctx, "1111", votesFor("1", "2", "3")))
	assert.Len(t, s.GetAll(ctx), 1)
}

func TestBackendReadFailure(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: NewMemoryKV()}
	s := New(kv, DefaultKey, fixedClock(), nil)

	require.NoError(t, s.Submit(ctx, "1111", votesFor("1", "2", "3")))

	kv.failRead = true
	assert.Empty(t, s.GetAll(ctx))
	assert.False(t, s.HasVoted(ctx, "1111"))
	_, ok := s.Get(ctx, "1111")
	assert.False(t, ok)

	// writes refuse to overwrite what they could not read
	err := s.Submit(ctx, "2222", votesFor("1", "2", "3"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, s.Delete(ctx, "1111"), ErrStorageUnavailable)

	kv.failRead = false
	all := s.GetAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "1111", all[0].Code)
}

func TestBackendWriteFailure(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: NewMemoryKV(), failWrite: true}
	s := New(kv, DefaultKey, fixedClock(), nil)

	err := s.Submit(ctx, "1111", votesFor("1", "2", "3"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.False(t, s.HasVoted(ctx, "1111"))

	assert.ErrorIs(t, s.Reset(ctx), ErrStorageUnavailable)
}

func TestConcurrentSubmits(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(nil)

	codes := []string{"1111", "1112", "1113", "2222", "2223", "2224", "3333", "3334"}
	var wg sync.WaitGroup
	for _, c := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			assert.NoError(t, s.Submit(ctx, code, votesFor("1", "2", "3")))
		}(c)
	}
	wg.Wait()

	assert.Len(t, s.GetAll(ctx), len(codes))
}
