// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides database schema creation.

The schema has three tables:

  - poll: one row per poll, immutable after creation
  - option: poll choices with a live vote_count tally and a position
    column that fixes display order
  - vote: the ledger of (poll_id, voter_token) pairs; its primary key
    enforces one vote per identity per poll at the storage layer

The DDL is written to run unchanged on SQLite (modernc.org/sqlite) and
PostgreSQL (lib/pq). CreateSchema is idempotent and runs at startup.
*/
package db
