// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session drives a voter or the admin through the ballot flow.

# States

	login --admin code-------------> admin
	login --valid code, not voted--> voting
	voting --Submit (complete)-----> submitted
	submitted --Reset--------------> login
	admin --Exit-------------------> login

A failed login (ErrInvalidCode, ErrAlreadyVoted) keeps the machine in login.
A failed Submit (*ballot.CategoryError or store.ErrStorageUnavailable) keeps
it in voting with the draft untouched. Any other call outside its state
returns ErrInvalidTransition, and admin calls return ErrNotAdmin.

Machine holds no resources besides the injected roster, store and logger, so it
can be driven directly in tests:

	m := session.NewMachine(roster.Default(), store.NewMemory(nil), nil)
	err := m.Login(ctx, "1111")

# Registry

The HTTP layer keeps one Machine per login in a Registry, keyed by a random
token. Registry.With runs a function on a session while holding that
session's lock. Sessions idle longer than the TTL are dropped, lazily on
lookup and on every Open.

A voting code is held by one live session at a time. A second Open for it
fails with ErrSessionInProgress until the first session is closed or expires,
so two browsers cannot submit competing ballots for the same code.
*/
package session
