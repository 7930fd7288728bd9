// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types shared
across the API.

The central type is Poll, which is both the response body of the poll
endpoints and the payload pushed on the per-poll update stream. Options
carry their tally directly (VoteCount), so no separate results shape
exists; a poll is always returned whole.

Voter identity never appears in these types. It travels in the
X-User-Token request header and is stored only inside the vote ledger.
*/
package models
