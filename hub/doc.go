// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hub implements per-poll fan-out of tally snapshots.

Subscribers register a buffered channel for one poll id and receive
every snapshot published for that poll from then on, in publish order.
Delivery is best effort: a subscriber whose channel is full is skipped
for that snapshot rather than delaying the rest, and a disconnected
subscriber simply unsubscribes. The hub holds no history; missed
updates are recovered by refetching the poll.
*/
package hub
