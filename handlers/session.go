// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/medal-awards/middleware"
	"github.com/danielhkuo/medal-awards/models"
	"github.com/danielhkuo/medal-awards/roster"
	"github.com/danielhkuo/medal-awards/session"
)

type SessionHandler struct {
	sessions *session.Registry
	roster   *roster.Roster
}

func NewSessionHandler(sessions *session.Registry, r *roster.Roster) *SessionHandler {
	return &SessionHandler{sessions: sessions, roster: r}
}

func sessionToken(r *http.Request) string {
	return r.Header.Get(middleware.SessionHeader)
}

func (h *SessionHandler) snapshot(m *session.Machine) models.SessionResponse {
	resp := models.SessionResponse{
		State: m.State(),
		Code:  m.Code(),
		Draft: m.Draft(),
	}
	if m.State() == models.StateSubmitted {
		resp.LastBallot = h.roster.RenderBallot(m.LastBallot())
	}
	return resp
}

// Login handles POST /session
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	token, state, err := h.sessions.Open(r.Context(), req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.LoginResponse{
		Token: token,
		State: state,
	})
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	var resp models.SessionResponse
	err := h.sessions.With(sessionToken(r), func(m *session.Machine) error {
		resp = h.snapshot(m)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetOptions handles GET /session/ballot/{category}/options
func (h *SessionHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	category := models.CategoryID(r.PathValue("category"))

	var resp models.OptionsResponse
	err := h.sessions.With(sessionToken(r), func(m *session.Machine) error {
		var err error
		resp, err = m.Options(category)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// AssignSlot handles PUT /session/ballot/{category}/{medal}
func (h *SessionHandler) AssignSlot(w http.ResponseWriter, r *http.Request) {
	category := models.CategoryID(r.PathValue("category"))
	medal := models.Medal(r.PathValue("medal"))

	var req models.AssignRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	var resp models.SessionResponse
	err := h.sessions.With(sessionToken(r), func(m *session.Machine) error {
		if err := m.Assign(category, medal, req.CandidateID); err != nil {
			return err
		}
		resp = h.snapshot(m)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ClearSlot handles DELETE /session/ballot/{category}/{medal}
func (h *SessionHandler) ClearSlot(w http.ResponseWriter, r *http.Request) {
	category := models.CategoryID(r.PathValue("category"))
	medal := models.Medal(r.PathValue("medal"))

	var resp models.SessionResponse
	err := h.sessions.With(sessionToken(r), func(m *session.Machine) error {
		if err := m.Clear(category, medal); err != nil {
			return err
		}
		resp = h.snapshot(m)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Submit handles POST /session/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var resp models.SubmitResponse
	err := h.sessions.With(sessionToken(r), func(m *session.Machine) error {
		if err := m.Submit(r.Context()); err != nil {
			return err
		}
		resp = models.SubmitResponse{
			State:   m.State(),
			Message: "Ballot recorded",
			Ballot:  h.roster.RenderBallot(m.LastBallot()),
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Reset handles POST /session/reset, leaving the confirmation screen
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.leave(w, r, (*session.Machine).Reset)
}

// Exit handles POST /session/exit, leaving the admin dashboard
func (h *SessionHandler) Exit(w http.ResponseWriter, r *http.Request) {
	h.leave(w, r, (*session.Machine).Exit)
}

// leave runs a transition back to login and forgets the session
func (h *SessionHandler) leave(w http.ResponseWriter, r *http.Request, transition func(*session.Machine) error) {
	token := sessionToken(r)
	err := h.sessions.With(token, transition)
	if err != nil {
		writeError(w, err)
		return
	}
	h.sessions.Close(token)
	slog.Info("session closed")

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{State: models.StateLogin})
}
