// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default), postgres, mongo or memory
  - DatabaseURL: SQLite file, PostgreSQL or MongoDB URI (sqlite default: awards.db)
  - MongoDatabase: MongoDB database name (default: awards)
  - StoreKey: slot holding the ballots (default: solo_ommini_awards_db_2025)
  - RosterPath: JSON roster file (default: built-in roster)
  - AdminCode, ValidCodes: override the roster's codes
  - IPHashSalt: Secret for hashing client IPs in logs (required)
  - LoginRate: login attempts per minute per client IP (default: 10)
  - SessionTTL: idle session lifetime (default: 2h)
  - TrustProxy: key the login limiter on X-Forwarded-For (default: false,
    only enable behind a reverse proxy that sets the header)

# CLI Flags

	-p            Server port
	-t            Database type
	-d            Database URL
	-mongo-db     MongoDB database name
	-key          Storage slot name
	-roster       Roster JSON file
	-admin-code   Admin access code
	-codes        Voting codes, comma separated
	-login-rate   Login attempts per minute
	-session-ttl  Idle session lifetime
	-trust-proxy  Trust X-Forwarded-For
	-ip-salt      IP hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_TYPE  → -t
	DATABASE_URL   → -d
	MONGO_DATABASE → -mongo-db
	STORE_KEY      → -key
	ROSTER_PATH    → -roster
	ADMIN_CODE     → -admin-code
	VALID_CODES    → -codes
	LOGIN_RATE     → -login-rate
	SESSION_TTL    → -session-ttl
	TRUST_PROXY    → -trust-proxy
	IP_HASH_SALT   → -ip-salt

CLI flags take precedence over environment variables. main loads a .env file
first, so values can live there too.

VALID_CODES is split on commas. A code containing a comma can be double
quoted:

	VALID_CODES=1111,2222,"33,33"

# Validation

ParseFlags returns an error if:

  - IP_HASH_SALT is missing
  - DATABASE_URL is missing for postgres or mongo
  - DATABASE_TYPE, PORT, LOGIN_RATE, SESSION_TTL or TRUST_PROXY cannot be parsed

Codes are trimmed like the codes typed at login.
*/
package cliparse
