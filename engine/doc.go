// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine orchestrates vote application.

CastVote is the only write path for tallies. It validates the target
option, records the (poll, identity) pair in the vote ledger, bumps the
option tally in the same transaction, and hands the committed snapshot
to the subscription hub. Duplicate votes are rejected without touching
tallies.

Votes on one poll are serialized by a per-poll mutex, which is what
makes the published snapshot sequence consistent with the order votes
were accepted. Votes on different polls share nothing but the lock
registry.
*/
package engine
