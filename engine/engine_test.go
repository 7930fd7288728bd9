// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/livepoll/hub"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/testutil"
)

func setupEngine(t *testing.T) (*Engine, *store.Store, *hub.Hub) {
	t.Helper()
	st := testutil.NewTestStore(t)
	h := hub.New()
	return New(st, h), st, h
}

// checkInvariant verifies that the sum of option tallies equals the
// number of ledger entries for the poll.
func checkInvariant(t *testing.T, st *store.Store, pollID string) {
	t.Helper()

	poll, err := st.GetPoll(context.Background(), pollID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	ledger, err := st.VoteCount(context.Background(), pollID)
	if err != nil {
		t.Fatalf("VoteCount failed: %v", err)
	}
	if poll.TotalVotes() != ledger {
		t.Errorf("invariant violated: tally sum %d != ledger count %d", poll.TotalVotes(), ledger)
	}
}

func TestCastVote(t *testing.T) {
	eng, st, _ := setupEngine(t)
	ctx := context.Background()

	poll := testutil.CreateTestPoll(t, st, "Best fruit?", "Apple", "Banana")

	snapshot, err := eng.CastVote(ctx, poll.ID, "u1", poll.Options[0].ID)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	if snapshot.Options[0].VoteCount != 1 {
		t.Errorf("expected Apple at 1, got %d", snapshot.Options[0].VoteCount)
	}
	if snapshot.Options[1].VoteCount != 0 {
		t.Errorf("expected Banana at 0, got %d", snapshot.Options[1].VoteCount)
	}
	checkInvariant(t, st, poll.ID)
}

func TestCastVote_DuplicateIdentity(t *testing.T) {
	eng, st, _ := setupEngine(t)
	ctx := context.Background()

	poll := testutil.CreateTestPoll(t, st, "Best fruit?", "Apple", "Banana")

	if _, err := eng.CastVote(ctx, poll.ID, "u1", poll.Options[0].ID); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}

	// Same identity, other option: rejected, tallies unchanged
	_, err := eng.CastVote(ctx, poll.ID, "u1", poll.Options[1].ID)
	if !errors.Is(err, store.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	after, _ := st.GetPoll(ctx, poll.ID)
	if after.Options[0].VoteCount != 1 || after.Options[1].VoteCount != 0 {
		t.Errorf("tallies changed by rejected vote: %+v", after.Options)
	}
	checkInvariant(t, st, poll.ID)
}

func TestCastVote_SameIdentityDifferentPolls(t *testing.T) {
	eng, st, _ := setupEngine(t)
	ctx := context.Background()

	pollA := testutil.CreateTestPoll(t, st, "A?", "A1", "A2")
	pollB := testutil.CreateTestPoll(t, st, "B?", "B1", "B2")

	if _, err := eng.CastVote(ctx, pollA.ID, "u1", pollA.Options[0].ID); err != nil {
		t.Fatalf("vote on poll A failed: %v", err)
	}
	// One vote per poll, not one vote globally
	if _, err := eng.CastVote(ctx, pollB.ID, "u1", pollB.Options[0].ID); err != nil {
		t.Fatalf("vote on poll B failed: %v", err)
	}
}

func TestCastVote_UnknownPoll(t *testing.T) {
	eng, _, _ := setupEngine(t)

	_, err := eng.CastVote(context.Background(), "missing", "u1", "opt")
	if !errors.Is(err, store.ErrPollNotFound) {
		t.Errorf("expected ErrPollNotFound, got %v", err)
	}
}

func TestCastVote_CrossPollOption(t *testing.T) {
	eng, st, _ := setupEngine(t)
	ctx := context.Background()

	pollA := testutil.CreateTestPoll(t, st, "A?", "A1", "A2")
	pollB := testutil.CreateTestPoll(t, st, "B?", "B1", "B2")

	_, err := eng.CastVote(ctx, pollA.ID, "u1", pollB.Options[0].ID)
	if !errors.Is(err, store.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}

	// Neither poll's tallies moved
	for _, poll := range []*models.Poll{pollA, pollB} {
		after, _ := st.GetPoll(ctx, poll.ID)
		if after.TotalVotes() != 0 {
			t.Errorf("poll %s tallies changed by rejected vote", poll.ID)
		}
	}
}

// A vote that fails option validation leaves no ledger entry, so the
// identity can retry with a valid option.
func TestCastVote_InvalidOptionLeavesNoLedgerEntry(t *testing.T) {
	eng, st, _ := setupEngine(t)
	ctx := context.Background()

	poll := testutil.CreateTestPoll(t, st, "Q?", "A", "B")

	if _, err := eng.CastVote(ctx, poll.ID, "u1", "no-such-option"); err == nil {
		t.Fatal("expected rejection for unknown option")
	}

	// Retry with a valid option must succeed
	if _, err := eng.CastVote(ctx, poll.ID, "u1", poll.Options[0].ID); err != nil {
		t.Errorf("retry after invalid option should succeed, got %v", err)
	}
	checkInvariant(t, st, poll.ID)
}

func TestCastVote_PublishesSnapshot(t *testing.T) {
	eng, st, h := setupEngine(t)
	ctx := context.Background()

	poll := testutil.CreateTestPoll(t, st, "Q?", "A", "B")

	updates := make(chan *models.Poll, 4)
	h.Subscribe(poll.ID, updates)
	defer h.Unsubscribe(poll.ID, updates)

	returned, err := eng.CastVote(ctx, poll.ID, "u1", poll.Options[0].ID)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	select {
	case published := <-updates:
		if published.Options[0].VoteCount != returned.Options[0].VoteCount {
			t.Errorf("published snapshot differs from returned one")
		}
	default:
		t.Fatal("expected a published snapshot")
	}

	// A rejected vote publishes nothing
	eng.CastVote(ctx, poll.ID, "u1", poll.Options[0].ID)
	select {
	case <-updates:
		t.Error("rejected vote must not publish")
	default:
	}
}

func TestCastVote_SnapshotOrder(t *testing.T) {
	eng, st, h := setupEngine(t)
	ctx := context.Background()

	poll := testutil.CreateTestPoll(t, st, "Q?", "A", "B")

	const votes = 10
	updates := make(chan *models.Poll, votes)
	h.Subscribe(poll.ID, updates)
	defer h.Unsubscribe(poll.ID, updates)

	for i := 0; i < votes; i++ {
		token := fmt.Sprintf("voter-%d", i)
		if _, err := eng.CastVote(ctx, poll.ID, token, poll.Options[0].ID); err != nil {
			t.Fatalf("vote %d failed: %v", i, err)
		}
	}

	// Snapshots arrive in acceptance order: totals strictly increase
	for i := 1; i <= votes; i++ {
		snapshot := <-updates
		if snapshot.TotalVotes() != i {
			t.Fatalf("snapshot %d: expected total %d, got %d", i, i, snapshot.TotalVotes())
		}
	}
}

func TestCastVote_ConcurrentDistinctIdentities(t *testing.T) {
	eng, st, _ := setupEngine(t)

	poll := testutil.CreateTestPoll(t, st, "Q?", "A", "B")
	optionID := poll.Options[0].ID

	const voters = 25
	var wg sync.WaitGroup
	var accepted atomic.Int32

	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			token := fmt.Sprintf("voter-%d", n)
			if _, err := eng.CastVote(context.Background(), poll.ID, token, optionID); err == nil {
				accepted.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if accepted.Load() != voters {
		t.Errorf("expected %d accepted votes, got %d", voters, accepted.Load())
	}

	after, _ := st.GetPoll(context.Background(), poll.ID)
	if after.Options[0].VoteCount != voters {
		t.Errorf("expected tally %d, got %d (lost updates)", voters, after.Options[0].VoteCount)
	}
	checkInvariant(t, st, poll.ID)
}

func TestCastVote_ConcurrentSameIdentity(t *testing.T) {
	eng, st, _ := setupEngine(t)

	poll := testutil.CreateTestPoll(t, st, "Q?", "A", "B")
	optionID := poll.Options[0].ID

	const attempts = 10
	var wg sync.WaitGroup
	var accepted, rejected atomic.Int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := eng.CastVote(context.Background(), poll.ID, "same-token", optionID)
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.Is(err, store.ErrAlreadyVoted):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if accepted.Load() != 1 {
		t.Errorf("expected exactly 1 accepted vote, got %d", accepted.Load())
	}
	if rejected.Load() != attempts-1 {
		t.Errorf("expected %d rejections, got %d", attempts-1, rejected.Load())
	}

	after, _ := st.GetPoll(context.Background(), poll.ID)
	if after.TotalVotes() != 1 {
		t.Errorf("expected total 1, got %d", after.TotalVotes())
	}
	checkInvariant(t, st, poll.ID)
}
