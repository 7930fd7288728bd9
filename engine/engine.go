// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/danielhkuo/livepoll/hub"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// Engine applies votes: ledger check, tally increment, and snapshot
// publication as one unit. A per-poll mutex serializes votes on the
// same poll so snapshots reach subscribers in acceptance order, while
// votes on unrelated polls proceed independently.
type Engine struct {
	store *store.Store
	hub   *hub.Hub

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(st *store.Store, h *hub.Hub) *Engine {
	return &Engine{
		store: st,
		hub:   h,
		locks: make(map[string]*sync.Mutex),
	}
}

// pollLock returns the mutex for a poll id, creating it on first use.
// Locks are never reclaimed; polls are never deleted either.
func (e *Engine) pollLock(pollID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.locks[pollID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[pollID] = l
	}
	return l
}

// CastVote records one vote and returns the updated poll snapshot.
//
// The ledger entry and the tally increment commit in a single
// transaction, so the sum of tallies always equals the number of
// ledger entries, including across restarts. A vote that fails option
// validation leaves no ledger entry, so the identity may retry with a
// valid option.
//
// Failure modes: store.ErrPollNotFound, store.ErrOptionNotFound,
// store.ErrInvalidOption, store.ErrAlreadyVoted.
func (e *Engine) CastVote(ctx context.Context, pollID, voterToken, optionID string) (*models.Poll, error) {
	lock := e.pollLock(pollID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := e.store.ResolveOption(ctx, tx, pollID, optionID); err != nil {
		return nil, err
	}

	accepted, err := e.store.TryRecordVote(ctx, tx, pollID, voterToken, optionID)
	if err != nil {
		return nil, err
	}
	if !accepted {
		return nil, store.ErrAlreadyVoted
	}

	if err := e.store.IncrementOption(ctx, tx, pollID, optionID); err != nil {
		return nil, err
	}

	snapshot, err := e.store.GetPollTx(ctx, tx, pollID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// Still under the poll lock: publish order matches commit order.
	e.hub.Publish(pollID, snapshot)

	slog.Info("vote accepted",
		"poll_id", pollID,
		"option_id", optionID,
		"total_votes", snapshot.TotalVotes(),
	)

	return snapshot, nil
}
