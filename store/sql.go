// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SQL dialects understood by SQLKV
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

var ErrUnsupportedDialect = errors.New("unsupported sql dialect")

// SQLKV stores slots in the kv_slot table created by db.CreateSchema.
type SQLKV struct {
	db      *sql.DB
	dialect string
}

func NewSQLKV(db *sql.DB, dialect string) (*SQLKV, error) {
	switch dialect {
	case DialectSQLite, DialectPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
	return &SQLKV{db: db, dialect: dialect}, nil
}

// rebind rewrites ? placeholders as $1, $2... for postgres
func (k *SQLKV) rebind(query string) string {
	if k.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (k *SQLKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload string
	err := k.db.QueryRowContext(ctx,
		k.rebind(`SELECT payload FROM kv_slot WHERE slot_key = ?`),
		key,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return []byte(payload), true, nil
}

func (k *SQLKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := k.db.ExecContext(ctx, k.rebind(`
		INSERT INTO kv_slot (slot_key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (slot_key) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at
	`), key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

func (k *SQLKV) Remove(ctx context.Context, key string) error {
	_, err := k.db.ExecContext(ctx,
		k.rebind(`DELETE FROM kv_slot WHERE slot_key = ?`),
		key,
	)
	if err != nil {
		return fmt.Errorf("failed to remove slot %s: %w", key, err)
	}
	return nil
}
