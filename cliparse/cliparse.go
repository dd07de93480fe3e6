package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-andiamo/splitter"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	MongoDatabase string
	StoreKey      string
	RosterPath    string
	AdminCode     string
	ValidCodes    []string
	IPHashSalt    string
	LoginRate     int // attempts per minute per client IP
	SessionTTL    time.Duration
	TrustProxy    bool // key the login limiter on X-Forwarded-For
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var validCodes string

	fs := flag.NewFlagSet("medal-awards", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sqlite file, postgres or mongodb URI)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres, mongo or memory)")
	fs.StringVar(&cfg.MongoDatabase, "mongo-db", "", "MongoDB database name")
	fs.StringVar(&cfg.StoreKey, "key", "", "Storage slot holding the ballots")

	// Ballot config
	fs.StringVar(&cfg.RosterPath, "roster", "", "Roster JSON file (default: built-in roster)")
	fs.StringVar(&cfg.AdminCode, "admin-code", "", "Admin access code (prefer env)")
	fs.StringVar(&validCodes, "codes", "", "Comma separated voting codes (prefer env)")
	fs.IntVar(&cfg.LoginRate, "login-rate", 0, "Login attempts per minute per client")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Idle session lifetime")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Trust X-Forwarded-For (only behind a reverse proxy)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Client IP hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres", "mongo", "memory":
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_TYPE %q (sqlite, postgres, mongo or memory)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case "sqlite":
			cfg.DatabaseURL = "awards.db"
		case "postgres", "mongo":
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	}

	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = envOr("MONGO_DATABASE", "awards")
	}
	if cfg.StoreKey == "" {
		cfg.StoreKey = os.Getenv("STORE_KEY")
	}
	if cfg.RosterPath == "" {
		cfg.RosterPath = os.Getenv("ROSTER_PATH")
	}
	if cfg.AdminCode == "" {
		cfg.AdminCode = os.Getenv("ADMIN_CODE")
	}
	// login trims typed codes, so configured ones must match that form
	cfg.AdminCode = strings.TrimSpace(cfg.AdminCode)

	if validCodes == "" {
		validCodes = os.Getenv("VALID_CODES")
	}
	if validCodes != "" {
		codes, err := SplitCodes(validCodes)
		if err != nil {
			return Config{}, fmt.Errorf("invalid VALID_CODES: %w", err)
		}
		cfg.ValidCodes = codes
	}

	if cfg.LoginRate == 0 {
		if rateStr := os.Getenv("LOGIN_RATE"); rateStr != "" {
			rate, err := strconv.Atoi(rateStr)
			if err != nil || rate <= 0 {
				return Config{}, errors.New("invalid LOGIN_RATE env variable")
			}
			cfg.LoginRate = rate
		} else {
			cfg.LoginRate = 10
		}
	}
	if cfg.LoginRate < 0 {
		return Config{}, errors.New("login rate must be positive")
	}

	if cfg.SessionTTL == 0 {
		if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil || ttl <= 0 {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = ttl
		} else {
			cfg.SessionTTL = 2 * time.Hour
		}
	}

	if !cfg.TrustProxy {
		if v := os.Getenv("TRUST_PROXY"); v != "" {
			trust, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = trust
		}
	}

	// Secrets - MUST be provided
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}

// SplitCodes splits a comma separated code list. Codes may be double quoted
// to keep a comma inside; blanks are dropped.
func SplitCodes(s string) ([]string, error) {
	commaSplitter, err := splitter.NewSplitter(',', splitter.DoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := commaSplitter.Split(s)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) >= 2 && strings.HasPrefix(p, `"`) && strings.HasSuffix(p, `"`) {
			p = p[1 : len(p)-1]
		}
		if p == "" {
			continue
		}
		codes = append(codes, p)
	}
	return codes, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
