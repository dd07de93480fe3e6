// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides access-code and session token utilities.

# Access Codes

Codes are typed by people, so surrounding whitespace is dropped before
comparison:

	code := auth.NormalizeCode(input)
	if auth.CodesEqual(code, adminCode) { ... }

CodesEqual runs in constant time and never matches an empty reference code.

# Session Tokens

A successful login is bound to a random UUID token:

	token := auth.GenerateSessionToken()
	err := auth.ValidateSessionToken(token)

ValidateSessionToken rejects malformed tokens with ErrInvalidToken before any
session lookup happens.

# IP Hashing

Client addresses are only ever logged hashed:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
