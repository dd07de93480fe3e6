// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the medal awards API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(sessions, roster, cfg)

# Endpoints

Health:

	GET /health

Roster (public):

	GET /roster        - Categories and candidates
	GET /candidates?q= - Fuzzy candidate search

Voting (X-Session-Token from POST /session):

	POST   /session                              - Log in with an access code
	GET    /session                              - Current state and draft
	GET    /session/ballot/{category}/options    - Slot availability
	PUT    /session/ballot/{category}/{medal}    - Assign a candidate
	DELETE /session/ballot/{category}/{medal}    - Clear a slot
	POST   /session/submit                       - Cast the ballot
	POST   /session/reset                        - Back to login after voting
	POST   /session/exit                         - Back to login from admin

Admin (session opened with the admin code):

	GET    /admin/leaderboard?top=N - Per-category ranking (default top 10)
	GET    /admin/ballots           - Every code, voted or pending
	GET    /admin/ballots/{code}    - One ballot
	DELETE /admin/ballots/{code}    - Delete a ballot, the code can vote again
	POST   /admin/reset             - Delete every ballot

POST /session is throttled per client IP (cfg.LoginRate per minute).
*/
package router
