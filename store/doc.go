// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists finalized ballots, at most one per access code.

# Layout

All ballots live in one named slot of a key-value surface, as a JSON array:

	[{"code":"1111","timestamp":1735689600000,"votes":{...}}, ...]

Reads parse the whole array. Writes rewrite it. The default slot name is
DefaultKey.

# Backends

KV has three implementations:

  - MemoryKV: a mutex-guarded map, for tests and ephemeral runs
  - SQLKV: the kv_slot table, SQLite (modernc.org/sqlite) or PostgreSQL (lib/pq)
  - MongoKV: one document per slot, upserted with ReplaceOne

# Failure Handling

A read that fails, or a payload that does not decode, is logged with
event=storage_unavailable and behaves as an empty store. Voting must never be
blocked by a bad read.

Writes are stricter. If the backend could not be read, Submit and Delete
return ErrStorageUnavailable instead of overwriting ballots they never saw.
A payload that is present but undecodable is replaced on the next write.
Backend write errors are wrapped in ErrStorageUnavailable.

# Duplicate Submits

Submit for a code that already has a ballot replaces it (last write wins).
Login refuses codes that have voted, so this only happens when that gate is
bypassed.
*/
package store
