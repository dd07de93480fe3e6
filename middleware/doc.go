// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs one line per request with method, path, status and duration_ms. 5xx
responses are logged at error level.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers Content-Type and
X-Session-Token.

# Login Throttling

LoginLimiter caps login attempts per client so the short access codes cannot
be brute forced. It uses a token bucket per salted client IP hash
(golang.org/x/time/rate):

	limiter := middleware.NewLoginLimiter(cfg.LoginRate, cfg.IPHashSalt, cfg.TrustProxy)
	mux.HandleFunc("POST /session", middleware.WithLogging(limiter.Limit(h.Login)))

Requests over the limit get 429 with Retry-After. The bucket key is the TCP
peer address; X-Forwarded-For is only used with -trust-proxy, since clients
can set it to anything.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.CategoryErrorResponse(w, http.StatusUnprocessableEntity, "message", "bollito")

Parse JSON request bodies (unknown fields rejected):

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Only ever logged as a salted hash. RemoteIP ignores the headers.
*/
package middleware
