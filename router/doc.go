// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires HTTP routes to handlers using Go 1.22+ method
pattern routing.

Routes:

	POST /polls                        create a poll
	GET  /polls                        list polls
	GET  /polls/{id}                   fetch one poll
	POST /polls/{id}/vote/{optionId}   cast a vote (X-User-Token)
	GET  /polls/{id}/vote              the caller's recorded vote
	GET  /polls/{id}/updates           SSE snapshot stream
	POST /identity                     mint a voter token
	GET  /health                       liveness probe

The returned handler is wrapped in CORS so browser frontends on other
origins can call the API directly.
*/
package router
