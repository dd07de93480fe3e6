// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/medal-awards/middleware"
	"github.com/danielhkuo/medal-awards/models"
	"github.com/danielhkuo/medal-awards/roster"
	"github.com/danielhkuo/medal-awards/session"
	"github.com/danielhkuo/medal-awards/tally"
)

type AdminHandler struct {
	sessions *session.Registry
	roster   *roster.Roster
}

func NewAdminHandler(sessions *session.Registry, r *roster.Roster) *AdminHandler {
	return &AdminHandler{sessions: sessions, roster: r}
}

func votedAgo(timestamp int64) string {
	return humanize.Time(time.UnixMilli(timestamp))
}

// GetLeaderboard handles GET /admin/leaderboard?top=N
func (h *AdminHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	top := tally.DefaultTop
	if s := r.URL.Query().Get("top"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "top must be a non-negative integer")
			return
		}
		top = n
	}

	var resp models.LeaderboardResponse
	err := h.sessions.With(sessionToken(r), func(m *session.Machine) error {
		var err error
		resp, err = m.Leaderboard(r.Context(), top)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ListBallots handles GET /admin/ballots
func (h *AdminHandler) ListBallots(w http.ResponseWriter, r *http.Request) {
	var resp models.BallotsResponse
	err := h.sessions.With(sessionToken(r), func(m *session.Machine) error {
		var err error
		resp, err = m.Ballots(r.Context())
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	for i := range resp.Codes {
		if resp.Codes[i].Voted {
			resp.Codes[i].VotedAgo = votedAgo(resp.Codes[i].Timestamp)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetBallot handles GET /admin/ballots/{code}
func (h *AdminHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	var rec models.BallotRecord
	err := h.sessions.With(sessionToken(r), func(m *session.Machine) error {
		var err error
		rec, err = m.Ballot(r.Context(), code)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotDetailResponse{
		Code:      rec.Code,
		Timestamp: rec.Timestamp,
		VotedAgo:  votedAgo(rec.Timestamp),
		Ballot:    h.roster.RenderBallot(rec.Votes),
	})
}

// DeleteBallot handles DELETE /admin/ballots/{code}
func (h *AdminHandler) DeleteBallot(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	err := h.sessions.With(sessionToken(r), func(m *session.Machine) error {
		return m.DeleteBallot(r.Context(), code)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetBallots handles POST /admin/reset
func (h *AdminHandler) ResetBallots(w http.ResponseWriter, r *http.Request) {
	err := h.sessions.With(sessionToken(r), func(m *session.Machine) error {
		return m.ResetBallots(r.Context())
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
