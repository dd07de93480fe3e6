// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/medal-awards/auth"
	"github.com/danielhkuo/medal-awards/ballot"
	"github.com/danielhkuo/medal-awards/models"
	"github.com/danielhkuo/medal-awards/roster"
	"github.com/danielhkuo/medal-awards/store"
	"github.com/danielhkuo/medal-awards/tally"
)

var (
	ErrInvalidCode       = errors.New("invalid access code")
	ErrAlreadyVoted      = errors.New("access code has already voted")
	ErrInvalidTransition = errors.New("operation not allowed in current state")
	ErrNotAdmin          = errors.New("admin session required")
	ErrBallotNotFound    = errors.New("no ballot for this code")
)

// Machine is one voter's (or the admin's) progress through
// login -> voting -> submitted, or login -> admin.
// It is not safe for concurrent use; Registry serializes access.
type Machine struct {
	roster *roster.Roster
	store  store.Store
	logger *slog.Logger

	state      string
	code       string
	draft      models.Draft
	lastBallot models.Draft
}

func NewMachine(r *roster.Roster, s store.Store, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		roster: r,
		store:  s,
		logger: logger,
		state:  models.StateLogin,
	}
}

func (m *Machine) State() string { return m.state }

// Code is the active voting code, empty outside Voting and Submitted
func (m *Machine) Code() string { return m.code }

// Draft returns a copy of the ballot being filled
func (m *Machine) Draft() models.Draft { return m.draft.Clone() }

// LastBallot returns the ballot persisted by the last Submit
func (m *Machine) LastBallot() models.Draft { return m.lastBallot.Clone() }

func (m *Machine) require(state string) error {
	if m.state != state {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, m.state)
	}
	return nil
}

// Login checks the admin code first, then the voting allow-list, then whether
// the code has already voted. On failure the machine stays in Login.
func (m *Machine) Login(ctx context.Context, code string) error {
	if err := m.require(models.StateLogin); err != nil {
		return err
	}

	code = auth.NormalizeCode(code)

	if m.roster.IsAdminCode(code) {
		m.state = models.StateAdmin
		m.logger.Info("admin logged in")
		return nil
	}

	if !m.roster.IsVotingCode(code) {
		return ErrInvalidCode
	}

	if m.store.HasVoted(ctx, code) {
		return ErrAlreadyVoted
	}

	m.state = models.StateVoting
	m.code = code
	m.draft = ballot.NewDraft(m.roster.Categories)
	m.logger.Info("voter logged in", "code", code)
	return nil
}

// Assign places a candidate in a medal slot of the draft
func (m *Machine) Assign(category models.CategoryID, medal models.Medal, candidateID string) error {
	if err := m.require(models.StateVoting); err != nil {
		return err
	}
	if _, ok := m.roster.Candidate(candidateID); !ok {
		return fmt.Errorf("%w: %q", ballot.ErrUnknownCandidate, candidateID)
	}
	return ballot.Assign(m.draft, category, medal, candidateID)
}

func (m *Machine) Clear(category models.CategoryID, medal models.Medal) error {
	if err := m.require(models.StateVoting); err != nil {
		return err
	}
	return ballot.Clear(m.draft, category, medal)
}

// Options lists every candidate for each slot of a category, with the ones
// chosen in the other slots marked unavailable
func (m *Machine) Options(category models.CategoryID) (models.OptionsResponse, error) {
	if err := m.require(models.StateVoting); err != nil {
		return models.OptionsResponse{}, err
	}

	resp := models.OptionsResponse{
		Category: category,
		Slots:    make(map[models.Medal][]models.SlotOption, len(models.Medals)),
	}
	for _, medal := range models.Medals {
		opts, err := ballot.Available(m.draft, category, medal, m.roster.Candidates)
		if err != nil {
			return models.OptionsResponse{}, err
		}
		resp.Slots[medal] = opts
	}
	return resp, nil
}

// Submit validates and persists the draft. A validation or storage failure
// leaves the machine in Voting with the draft intact.
func (m *Machine) Submit(ctx context.Context) error {
	if err := m.require(models.StateVoting); err != nil {
		return err
	}

	if res := ballot.Validate(m.draft, m.roster.Categories); !res.OK() {
		return res.Err()
	}

	if err := m.store.Submit(ctx, m.code, m.draft); err != nil {
		m.logger.Error("ballot not recorded", "code", m.code, "error", err)
		return err
	}

	m.logger.Info("ballot submitted", "code", m.code)
	m.state = models.StateSubmitted
	m.lastBallot = m.draft
	m.draft = nil
	return nil
}

// Reset leaves the confirmation screen
func (m *Machine) Reset() error {
	if err := m.require(models.StateSubmitted); err != nil {
		return err
	}
	m.toLogin()
	return nil
}

// Exit leaves the admin dashboard
func (m *Machine) Exit() error {
	if err := m.require(models.StateAdmin); err != nil {
		return err
	}
	m.toLogin()
	return nil
}

func (m *Machine) toLogin() {
	m.state = models.StateLogin
	m.code = ""
	m.draft = nil
	m.lastBallot = nil
}

// Admin operations

func (m *Machine) requireAdmin() error {
	if m.state != models.StateAdmin {
		return ErrNotAdmin
	}
	return nil
}

// Leaderboard tallies every stored ballot. top <= 0 keeps every entry.
func (m *Machine) Leaderboard(ctx context.Context, top int) (models.LeaderboardResponse, error) {
	if err := m.requireAdmin(); err != nil {
		return models.LeaderboardResponse{}, err
	}

	records := m.store.GetAll(ctx)
	scores := tally.Tally(records, m.roster.Categories, m.roster.Candidates)
	summary := tally.Summarize(records, m.roster.Codes)

	resp := models.LeaderboardResponse{
		BallotCount:   summary.BallotCount,
		EligibleCount: summary.EligibleCount,
		Categories:    make([]models.CategoryLeaderboard, 0, len(m.roster.Categories)),
	}
	for _, cat := range m.roster.Categories {
		resp.Categories = append(resp.Categories, models.CategoryLeaderboard{
			Category: cat,
			Entries:  tally.Top(scores[cat.ID], top),
		})
	}
	return resp, nil
}

// Ballots lists every voting code with its voted/pending status
func (m *Machine) Ballots(ctx context.Context) (models.BallotsResponse, error) {
	if err := m.requireAdmin(); err != nil {
		return models.BallotsResponse{}, err
	}

	records := m.store.GetAll(ctx)
	byCode := make(map[string]models.BallotRecord, len(records))
	for _, r := range records {
		byCode[r.Code] = r
	}
	summary := tally.Summarize(records, m.roster.Codes)

	resp := models.BallotsResponse{
		BallotCount:   summary.BallotCount,
		EligibleCount: summary.EligibleCount,
		Codes:         make([]models.CodeStatus, 0, len(m.roster.Codes)),
	}
	for _, code := range m.roster.Codes {
		status := models.CodeStatus{Code: code}
		if r, ok := byCode[code]; ok {
			status.Voted = true
			status.Timestamp = r.Timestamp
		}
		resp.Codes = append(resp.Codes, status)
	}
	return resp, nil
}

// Ballot returns the stored ballot of one code
func (m *Machine) Ballot(ctx context.Context, code string) (models.BallotRecord, error) {
	if err := m.requireAdmin(); err != nil {
		return models.BallotRecord{}, err
	}

	rec, ok := m.store.Get(ctx, code)
	if !ok {
		return models.BallotRecord{}, ErrBallotNotFound
	}
	return rec, nil
}

// DeleteBallot removes one code's ballot so that code can vote again
func (m *Machine) DeleteBallot(ctx context.Context, code string) error {
	if err := m.requireAdmin(); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, code); err != nil {
		return err
	}
	m.logger.Info("ballot deleted", "code", code)
	return nil
}

// ResetBallots removes every ballot
func (m *Machine) ResetBallots(ctx context.Context) error {
	if err := m.requireAdmin(); err != nil {
		return err
	}
	if err := m.store.Reset(ctx); err != nil {
		return err
	}
	m.logger.Warn("all ballots reset")
	return nil
}
