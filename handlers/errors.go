// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/medal-awards/ballot"
	"github.com/danielhkuo/medal-awards/middleware"
	"github.com/danielhkuo/medal-awards/session"
	"github.com/danielhkuo/medal-awards/store"
)

// writeError maps domain errors onto HTTP statuses. Ballot errors tied to a
// category carry it in the response so the form can focus it.
func writeError(w http.ResponseWriter, err error) {
	status, message := http.StatusInternalServerError, "Internal error"

	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		status, message = http.StatusUnauthorized, "Session not found or expired"
	case errors.Is(err, session.ErrInvalidCode):
		status, message = http.StatusUnauthorized, "Invalid access code"
	case errors.Is(err, session.ErrAlreadyVoted):
		status, message = http.StatusConflict, "This code has already voted"
	case errors.Is(err, session.ErrSessionInProgress):
		status, message = http.StatusConflict, "This code is already voting in another session"
	case errors.Is(err, ballot.ErrIncompleteBallot):
		status, message = http.StatusUnprocessableEntity, "Assign gold, silver and bronze in this category"
	case errors.Is(err, ballot.ErrDuplicateWithinCategory):
		status, message = http.StatusUnprocessableEntity, "A candidate can hold only one medal per category"
	case errors.Is(err, ballot.ErrSlotTaken):
		status, message = http.StatusConflict, "Candidate already holds another medal in this category"
	case errors.Is(err, ballot.ErrUnknownCategory),
		errors.Is(err, ballot.ErrUnknownMedal),
		errors.Is(err, ballot.ErrUnknownCandidate):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, session.ErrNotAdmin):
		status, message = http.StatusForbidden, "Admin session required"
	case errors.Is(err, session.ErrInvalidTransition):
		status, message = http.StatusConflict, "Not allowed at this step"
	case errors.Is(err, session.ErrBallotNotFound):
		status, message = http.StatusNotFound, "No ballot for this code"
	case errors.Is(err, store.ErrStorageUnavailable):
		status, message = http.StatusServiceUnavailable, "Ballot not recorded, storage unavailable. Please retry"
	default:
		slog.Error("unhandled error", "error", err)
	}

	var catErr *ballot.CategoryError
	if errors.As(err, &catErr) {
		middleware.CategoryErrorResponse(w, status, message, catErr.Category)
		return
	}
	middleware.ErrorResponse(w, status, message)
}
