// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/medal-awards/cliparse"
	"github.com/danielhkuo/medal-awards/db"
	"github.com/danielhkuo/medal-awards/middleware"
	"github.com/danielhkuo/medal-awards/models"
	"github.com/danielhkuo/medal-awards/roster"
	"github.com/danielhkuo/medal-awards/store"
)

// AdminCode and VoterCodes match the built-in roster
const AdminCode = "5555"

var VoterCodes = []string{"1111", "1112", "1113", "2222", "2223", "2224", "3333", "3334", "3335", "3336"}

// FixedTime is the clock of every store built here
var FixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func FixedClock() store.Clock {
	return store.ClockFunc(func() time.Time { return FixedTime })
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: "memory",
		StoreKey:     store.DefaultKey,
		IPHashSalt:   "test-ip-salt",
		LoginRate:    1000,
		SessionTTL:   time.Hour,
	}
}

// NewMemoryStore returns an empty in-memory ballot store on FixedClock
func NewMemoryStore() *store.BallotStore {
	return store.NewMemory(FixedClock())
}

// SetupTestDB opens a fresh SQLite file with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "awards.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// NewSQLStore returns a ballot store on a fresh SQLite file
func NewSQLStore(t *testing.T) *store.BallotStore {
	t.Helper()

	kv, err := store.NewSQLKV(SetupTestDB(t), store.DialectSQLite)
	if err != nil {
		t.Fatalf("Failed to create SQL kv: %v", err)
	}
	return store.New(kv, store.DefaultKey, FixedClock(), nil)
}

// CompleteBallot fills every category with the first three candidates
func CompleteBallot(r *roster.Roster) models.Draft {
	d := make(models.Draft, len(r.Categories))
	for _, cat := range r.Categories {
		d[cat.ID] = models.Slots{
			Gold:   r.Candidates[0].ID,
			Silver: r.Candidates[1].ID,
			Bronze: r.Candidates[2].ID,
		}
	}
	return d
}

// SubmitTestBallot stores a complete ballot for code
func SubmitTestBallot(t *testing.T, s store.Store, r *roster.Roster, code string) {
	t.Helper()

	if err := s.Submit(context.Background(), code, CompleteBallot(r)); err != nil {
		t.Fatalf("Failed to submit test ballot: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// SessionHeaders returns the header map carrying a session token
func SessionHeaders(token string) map[string]string {
	return map[string]string{middleware.SessionHeader: token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
