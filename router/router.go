// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/medal-awards/cliparse"
	"github.com/danielhkuo/medal-awards/handlers"
	"github.com/danielhkuo/medal-awards/middleware"
	"github.com/danielhkuo/medal-awards/roster"
	"github.com/danielhkuo/medal-awards/session"
)

func NewRouter(sessions *session.Registry, r *roster.Roster, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessions, r)
	adminHandler := handlers.NewAdminHandler(sessions, r)
	rosterHandler := handlers.NewRosterHandler(r)
	loginLimiter := middleware.NewLoginLimiter(cfg.LoginRate, cfg.IPHashSalt, cfg.TrustProxy)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Roster (public)
	mux.HandleFunc("GET /roster", middleware.WithLogging(rosterHandler.GetRoster))
	mux.HandleFunc("GET /candidates", middleware.WithLogging(rosterHandler.SearchCandidates))

	// Login and ballot editing (X-Session-Token)
	mux.HandleFunc("POST /session", middleware.WithLogging(loginLimiter.Limit(sessionHandler.Login)))
	mux.HandleFunc("GET /session", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("GET /session/ballot/{category}/options", middleware.WithLogging(sessionHandler.GetOptions))
	mux.HandleFunc("PUT /session/ballot/{category}/{medal}", middleware.WithLogging(sessionHandler.AssignSlot))
	mux.HandleFunc("DELETE /session/ballot/{category}/{medal}", middleware.WithLogging(sessionHandler.ClearSlot))
	mux.HandleFunc("POST /session/submit", middleware.WithLogging(sessionHandler.Submit))
	mux.HandleFunc("POST /session/reset", middleware.WithLogging(sessionHandler.Reset))
	mux.HandleFunc("POST /session/exit", middleware.WithLogging(sessionHandler.Exit))

	// Admin dashboard (admin session)
	mux.HandleFunc("GET /admin/leaderboard", middleware.WithLogging(adminHandler.GetLeaderboard))
	mux.HandleFunc("GET /admin/ballots", middleware.WithLogging(adminHandler.ListBallots))
	mux.HandleFunc("GET /admin/ballots/{code}", middleware.WithLogging(adminHandler.GetBallot))
	mux.HandleFunc("DELETE /admin/ballots/{code}", middleware.WithLogging(adminHandler.DeleteBallot))
	mux.HandleFunc("POST /admin/reset", middleware.WithLogging(adminHandler.ResetBallots))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("medal-awards API v1"))
	})

	return mux
}
