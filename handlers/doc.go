// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the medal awards API.

# Handler Types

Each handler is a struct over the session registry and the roster:

  - SessionHandler: Login, ballot editing, submission, leaving a screen
  - AdminHandler: Leaderboard, code roster, ballot inspection and deletion
  - RosterHandler: Public categories, candidates and candidate search

	sessionHandler := handlers.NewSessionHandler(sessions, roster)

# Session Flow

A client logs in with its access code and keeps the returned token:

	POST /session                           → Login (returns token and state)
	PUT  /session/ballot/{category}/{medal} → AssignSlot
	POST /session/submit                    → Submit
	POST /session/reset                     → Reset (back to login)

Session operations require the X-Session-Token header. Every operation runs
under the session's lock, so one client's requests are serialized.

# Errors

writeError maps domain errors onto statuses:

	invalid code, unknown session      → 401
	not the admin session              → 403
	already voted, slot taken, bad step → 409
	incomplete or duplicate ballot     → 422 (with "category")
	storage unavailable                → 503

A rejected submission leaves the draft untouched so the client can retry.
*/
package handlers
