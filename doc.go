// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the medal awards API server.

Friends with a personal access code award gold, silver and bronze to three
different candidates in every category. Each code votes once. The admin code
opens a live leaderboard (gold 3, silver 2, bronze 1) and a per-code view
where single ballots can be inspected or deleted.

# Starting the Server

The server reads a .env file if present, then environment variables or CLI
flags:

	IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -ip-salt dev

# Configuration

Required settings:

  - IP_HASH_SALT (-ip-salt): Secret for hashing client IPs in the login limiter

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres, mongo or memory (default: sqlite)
  - DATABASE_URL (-d): SQLite file, PostgreSQL DSN or MongoDB URI (default: awards.db)
  - MONGO_DATABASE (-mongo-db): MongoDB database name (default: awards)
  - STORE_KEY (-key): Storage slot holding the ballots
  - ROSTER_PATH (-roster): Roster JSON file replacing the built-in roster
  - VALID_CODES (-codes), ADMIN_CODE (-admin-code): Override the roster codes
  - LOGIN_RATE (-login-rate): Login attempts per minute per client (default: 10)
  - SESSION_TTL (-session-ttl): Idle session lifetime (default: 2h)
  - TRUST_PROXY (-trust-proxy): Rate limit logins by X-Forwarded-For, only behind a proxy (default: false)

# Architecture

  - handlers: HTTP request handlers (session, admin, roster)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, login rate limit
  - session: Per-client state machine and session registry
  - ballot: Draft editing and ballot validation
  - tally: Leaderboard computation
  - store: Ballot persistence over a key-value slot (memory, SQL, MongoDB)
  - roster: Codes, candidates and categories
  - models: Domain and request/response types
  - auth: Tokens and code comparison
  - db: SQL connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
