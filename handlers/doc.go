// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers.

Handler groups:

  - PollHandler: create, list, and fetch polls
  - VotingHandler: cast a vote, look up the caller's own vote
  - StreamHandler: per-poll live update stream (server-sent events)
  - IdentityHandler: mint opaque voter tokens

Handlers are thin: they parse and validate the request shape, delegate
to the store or engine, and translate sentinel errors into HTTP status
codes (see errors.go). Vote requests identify the voter through the
X-User-Token header.
*/
package handlers
