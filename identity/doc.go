// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity handles opaque voter tokens.

A token identifies a voter for the one-vote-per-poll rule and nothing
more. Clients normally generate and keep their own token; NewToken
exists for clients that prefer a server-issued one. ValidateToken only
enforces that a token is a sane ledger key, it performs no
authentication.
*/
package identity
