// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/medal-awards/middleware"
	"github.com/danielhkuo/medal-awards/models"
	"github.com/danielhkuo/medal-awards/roster"
)

type RosterHandler struct {
	roster *roster.Roster
}

func NewRosterHandler(r *roster.Roster) *RosterHandler {
	return &RosterHandler{roster: r}
}

// GetRoster handles GET /roster. Access codes are never exposed.
func (h *RosterHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.RosterResponse{
		Categories: h.roster.Categories,
		Candidates: h.roster.Candidates,
	})
}

// SearchCandidates handles GET /candidates?q=
func (h *RosterHandler) SearchCandidates(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.roster.Search(r.URL.Query().Get("q")))
}
