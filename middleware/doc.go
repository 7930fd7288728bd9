// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers: request
logging, CORS (including the X-User-Token identity header), JSON
encoding/decoding, and client IP extraction.

Handlers respond through JSONResponse and ErrorResponse so every body
on the wire has the same shape.
*/
package middleware
