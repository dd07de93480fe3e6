package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danielhkuo/medal-awards/cliparse"
	"github.com/danielhkuo/medal-awards/db"
	"github.com/danielhkuo/medal-awards/middleware"
	"github.com/danielhkuo/medal-awards/roster"
	"github.com/danielhkuo/medal-awards/router"
	"github.com/danielhkuo/medal-awards/session"
	"github.com/danielhkuo/medal-awards/store"
)

func main() {
	var err error

	// .env is optional, real env wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env file", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load roster
	r, err := loadRoster(cfg)
	if err != nil {
		slog.Error("roster invalid", "error", err)
		os.Exit(1)
	}
	if len(r.Candidates) < 2 {
		slog.Warn("fewer than two candidates, no ballot can be completed", "candidates", len(r.Candidates))
	}
	slog.Info("Roster ready",
		"categories", len(r.Categories),
		"candidates", len(r.Candidates),
		"codes", len(r.Codes))

	// Connect storage
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	kv, closeKV, err := openKV(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("storage connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer closeKV()
	slog.Info("Storage ready", "type", cfg.DatabaseType)

	ballots := store.New(kv, cfg.StoreKey, nil, nil)
	sessions := session.NewRegistry(r, ballots, cfg.SessionTTL, nil, nil)

	// Create router
	mux := router.NewRouter(sessions, r, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func loadRoster(cfg cliparse.Config) (*roster.Roster, error) {
	r := roster.Default()
	if cfg.RosterPath != "" {
		var err error
		if r, err = roster.Load(cfg.RosterPath); err != nil {
			return nil, err
		}
	}

	r = r.WithCodes(cfg.ValidCodes, cfg.AdminCode)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// openKV connects the configured backend. The returned func releases it.
func openKV(ctx context.Context, cfg cliparse.Config) (store.KV, func(), error) {
	switch cfg.DatabaseType {
	case "memory":
		slog.Warn("memory storage, ballots are lost on restart")
		return store.NewMemoryKV(), func() {}, nil

	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DatabaseURL))
		if err != nil {
			return nil, nil, err
		}
		if err := client.Ping(ctx, nil); err != nil {
			client.Disconnect(context.Background())
			return nil, nil, err
		}
		coll := client.Database(cfg.MongoDatabase).Collection(store.DefaultCollection)
		return store.NewMongoKV(coll), func() {
			if err := client.Disconnect(context.Background()); err != nil {
				slog.Error("mongo disconnect failed", "error", err)
			}
		}, nil

	default:
		conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		kv, err := store.NewSQLKV(conn, cfg.DatabaseType)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		return kv, func() { conn.Close() }, nil
	}
}
