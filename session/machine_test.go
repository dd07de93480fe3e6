// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/medal-awards/ballot"
	"github.com/danielhkuo/medal-awards/models"
	"github.com/danielhkuo/medal-awards/roster"
	"github.com/danielhkuo/medal-awards/store"
)

func testClock() store.Clock {
	return store.ClockFunc(func() time.Time {
		return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	})
}

// failingStore accepts reads but rejects every write
type failingStore struct {
	store.Store
}

func (failingStore) Submit(context.Context, string, models.Draft) error {
	return fmt.Errorf("%w: connection refused", store.ErrStorageUnavailable)
}

func newMachine(t *testing.T) (*Machine, *store.BallotStore) {
	t.Helper()
	s := store.NewMemory(testClock())
	return NewMachine(roster.Default(), s, nil), s
}

// fillDraft completes every category with candidates 1, 2, 3
func fillDraft(t *testing.T, m *Machine) {
	t.Helper()
	for _, cat := range roster.Default().Categories {
		require.NoError(t, m.Assign(cat.ID, models.Gold, "1"))
		require.NoError(t, m.Assign(cat.ID, models.Silver, "2"))
		require.NoError(t, m.Assign(cat.ID, models.Bronze, "3"))
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		code      string
		voted     []string
		wantErr   error
		wantState string
	}{
		{"voter", "1111", nil, nil, models.StateVoting},
		{"voter with whitespace", "  2222\n", nil, nil, models.StateVoting},
		{"admin", "5555", nil, nil, models.StateAdmin},
		{"admin with whitespace", " 5555 ", nil, nil, models.StateAdmin},
		{"invalid", "9999", nil, ErrInvalidCode, models.StateLogin},
		{"empty", "", nil, ErrInvalidCode, models.StateLogin},
		{"already voted", "1111", []string{"1111"}, ErrAlreadyVoted, models.StateLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s := newMachine(t)
			for _, code := range tt.voted {
				require.NoError(t, s.Submit(ctx, code, models.Draft{}))
			}

			err := m.Login(ctx, tt.code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, m.State())
		})
	}
}

func TestLogin_FreshDraft(t *testing.T) {
	m, _ := newMachine(t)
	require.NoError(t, m.Login(context.Background(), " 1111 "))

	assert.Equal(t, "1111", m.Code())
	draft := m.Draft()
	assert.Len(t, draft, 5)
	for _, slots := range draft {
		assert.Equal(t, models.Slots{}, slots)
	}
}

func TestLogin_OnlyFromLogin(t *testing.T) {
	m, _ := newMachine(t)
	require.NoError(t, m.Login(context.Background(), "1111"))
	assert.ErrorIs(t, m.Login(context.Background(), "2222"), ErrInvalidTransition)
	assert.Equal(t, "1111", m.Code())
}

func TestVotingFlow(t *testing.T) {
	ctx := context.Background()
	m, s := newMachine(t)
	require.NoError(t, m.Login(ctx, "1111"))

	fillDraft(t, m)
	require.NoError(t, m.Submit(ctx))

	assert.Equal(t, models.StateSubmitted, m.State())
	assert.True(t, s.HasVoted(ctx, "1111"))
	assert.Len(t, m.LastBallot(), 5)
	assert.Nil(t, m.Draft())

	rec, ok := s.Get(ctx, "1111")
	require.True(t, ok)
	assert.Equal(t, models.Slots{Gold: "1", Silver: "2", Bronze: "3"}, rec.Votes["ommino"])

	require.NoError(t, m.Reset())
	assert.Equal(t, models.StateLogin, m.State())
	assert.Empty(t, m.Code())
	assert.Nil(t, m.LastBallot())

	// the same code is now refused
	assert.ErrorIs(t, m.Login(ctx, "1111"), ErrAlreadyVoted)
}

func TestSubmit_Incomplete(t *testing.T) {
	ctx := context.Background()
	m, s := newMachine(t)
	require.NoError(t, m.Login(ctx, "1111"))

	require.NoError(t, m.Assign("cagnolino", models.Gold, "1"))
	err := m.Submit(ctx)
	assert.ErrorIs(t, err, ballot.ErrIncompleteBallot)

	var catErr *ballot.CategoryError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, models.CategoryID("cagnolino"), catErr.Category)

	// nothing lost, nothing stored
	assert.Equal(t, models.StateVoting, m.State())
	assert.Equal(t, "1", m.Draft()["cagnolino"].Gold)
	assert.False(t, s.HasVoted(ctx, "1111"))
}

func TestSubmit_ReportsFirstIncompleteCategory(t *testing.T) {
	ctx := context.Background()
	m, _ := newMachine(t)
	require.NoError(t, m.Login(ctx, "1111"))
	fillDraft(t, m)
	require.NoError(t, m.Clear("bruciato", models.Silver))
	require.NoError(t, m.Clear("ommino", models.Gold))

	var catErr *ballot.CategoryError
	require.True(t, errors.As(m.Submit(ctx), &catErr))
	assert.Equal(t, models.CategoryID("bruciato"), catErr.Category)
}

func TestSubmit_StorageFailureKeepsDraft(t *testing.T) {
	ctx := context.Background()
	m := NewMachine(roster.Default(), failingStore{Store: store.NewMemory(testClock())}, nil)
	require.NoError(t, m.Login(ctx, "1111"))
	fillDraft(t, m)

	err := m.Submit(ctx)
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
	assert.Equal(t, models.StateVoting, m.State())
	assert.Equal(t, "1", m.Draft()["ommino"].Gold)
}

func TestAssign(t *testing.T) {
	m, _ := newMachine(t)

	// not voting yet
	assert.ErrorIs(t, m.Assign("ommino", models.Gold, "1"), ErrInvalidTransition)

	require.NoError(t, m.Login(context.Background(), "1111"))
	require.NoError(t, m.Assign("ommino", models.Gold, "1"))
	assert.ErrorIs(t, m.Assign("ommino", models.Silver, "1"), ballot.ErrSlotTaken)
	assert.ErrorIs(t, m.Assign("ommino", models.Silver, "404"), ballot.ErrUnknownCandidate)
	assert.ErrorIs(t, m.Assign("nope", models.Silver, "2"), ballot.ErrUnknownCategory)
	assert.ErrorIs(t, m.Assign("ommino", "wood", "2"), ballot.ErrUnknownMedal)

	// cross-category reuse
	require.NoError(t, m.Assign("bollito", models.Gold, "1"))
}

func TestOptions(t *testing.T) {
	m, _ := newMachine(t)
	_, err := m.Options("ommino")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, m.Login(context.Background(), "1111"))
	require.NoError(t, m.Assign("ommino", models.Gold, "1"))

	opts, err := m.Options("ommino")
	require.NoError(t, err)
	require.Len(t, opts.Slots, 3)

	silver := opts.Slots[models.Silver]
	require.Len(t, silver, 10)
	assert.Equal(t, "1", silver[0].CandidateID)
	assert.False(t, silver[0].Available)
	assert.True(t, silver[1].Available)
	assert.True(t, opts.Slots[models.Gold][0].Available)

	_, err = m.Options("nope")
	assert.ErrorIs(t, err, ballot.ErrUnknownCategory)
}

func TestInvalidTransitions(t *testing.T) {
	ctx := context.Background()
	m, _ := newMachine(t)

	assert.ErrorIs(t, m.Submit(ctx), ErrInvalidTransition)
	assert.ErrorIs(t, m.Reset(), ErrInvalidTransition)
	assert.ErrorIs(t, m.Exit(), ErrInvalidTransition)

	require.NoError(t, m.Login(ctx, "1111"))
	assert.ErrorIs(t, m.Reset(), ErrInvalidTransition, "voting has no way back to login")
	assert.ErrorIs(t, m.Exit(), ErrInvalidTransition)
	assert.Equal(t, models.StateVoting, m.State())
}

func TestAdmin_RequiresAdminState(t *testing.T) {
	ctx := context.Background()
	m, _ := newMachine(t)
	require.NoError(t, m.Login(ctx, "1111"))

	_, err := m.Leaderboard(ctx, 10)
	assert.ErrorIs(t, err, ErrNotAdmin)
	_, err = m.Ballots(ctx)
	assert.ErrorIs(t, err, ErrNotAdmin)
	_, err = m.Ballot(ctx, "1111")
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.ErrorIs(t, m.DeleteBallot(ctx, "1111"), ErrNotAdmin)
	assert.ErrorIs(t, m.ResetBallots(ctx), ErrNotAdmin)
}

func TestAdminFlow(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory(testClock())
	r := roster.Default()

	for _, code := range []string{"1111", "2222"} {
		voter := NewMachine(r, s, nil)
		require.NoError(t, voter.Login(ctx, code))
		fillDraft(t, voter)
		require.NoError(t, voter.Submit(ctx))
	}

	admin := NewMachine(r, s, nil)
	require.NoError(t, admin.Login(ctx, "5555"))
	assert.Equal(t, models.StateAdmin, admin.State())
	assert.Empty(t, admin.Code())

	board, err := admin.Leaderboard(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, board.BallotCount)
	assert.Equal(t, 10, board.EligibleCount)
	require.Len(t, board.Categories, 5)
	top := board.Categories[0].Entries
	require.Len(t, top, 3)
	assert.Equal(t, "1", top[0].CandidateID)
	assert.Equal(t, 6, top[0].Score)
	assert.Equal(t, 2, top[0].GoldCount)

	full, err := admin.Leaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, full.Categories[0].Entries, 10)

	list, err := admin.Ballots(ctx)
	require.NoError(t, err)
	require.Len(t, list.Codes, 10)
	assert.Equal(t, "1111", list.Codes[0].Code)
	assert.True(t, list.Codes[0].Voted)
	assert.NotZero(t, list.Codes[0].Timestamp)
	assert.False(t, list.Codes[1].Voted)

	rec, err := admin.Ballot(ctx, "2222")
	require.NoError(t, err)
	assert.Equal(t, "2222", rec.Code)
	_, err = admin.Ballot(ctx, "3333")
	assert.ErrorIs(t, err, ErrBallotNotFound)

	require.NoError(t, admin.DeleteBallot(ctx, "1111"))
	assert.False(t, s.HasVoted(ctx, "1111"))

	// deleted code can vote again
	again := NewMachine(r, s, nil)
	require.NoError(t, again.Login(ctx, "1111"))

	require.NoError(t, admin.ResetBallots(ctx))
	assert.Empty(t, s.GetAll(ctx))

	require.NoError(t, admin.Exit())
	assert.Equal(t, models.StateLogin, admin.State())
}
