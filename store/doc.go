// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the source of truth for polls, options, and the vote
ledger.

It exposes two groups of operations:

  - Poll store: CreatePoll, GetPoll, ListPolls, IncrementOption.
    Polls are immutable after creation except for option tallies.
  - Vote ledger: TryRecordVote, MyVote, VoteCount. The ledger holds one
    row per (poll, identity) pair; TryRecordVote is an atomic
    insert-if-absent, so duplicate or raced votes can never be counted
    twice.

Mutations that must be atomic together (ledger insert plus tally
increment) take a *sql.Tx handed out by Begin; the engine package owns
that transaction. Everything runs on database/sql and works against
both SQLite and PostgreSQL.

Failures are reported through sentinel errors (ErrPollNotFound,
ErrInvalidOption, ErrAlreadyVoted, ...) that handlers match with
errors.Is.
*/
package store
