// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/livepoll/testutil"
)

// TestConcurrentVotes_DistinctIdentities verifies that simultaneous
// votes from different identities are all counted with no lost
// increments.
func TestConcurrentVotes_DistinctIdentities(t *testing.T) {
	st, eng, _ := setupHandlers(t)
	handler := NewVotingHandler(st, eng)

	poll := testutil.CreateTestPoll(t, st, "Q?", "A", "B")
	optionID := poll.Options[0].ID

	const voters = 20
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			token := fmt.Sprintf("voter-%d", n)
			req := testutil.MakeRequest("POST", "/polls/"+poll.ID+"/vote/"+optionID, nil,
				map[string]string{UserTokenHeader: token})
			req.SetPathValue("id", poll.ID)
			req.SetPathValue("optionId", optionID)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != voters {
		t.Errorf("Expected %d successful votes, got %d", voters, successCount.Load())
	}

	after, err := st.GetPoll(context.Background(), poll.ID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if after.Options[0].VoteCount != voters {
		t.Errorf("Expected tally %d, got %d (lost updates)", voters, after.Options[0].VoteCount)
	}

	ledger, err := st.VoteCount(context.Background(), poll.ID)
	if err != nil {
		t.Fatalf("VoteCount failed: %v", err)
	}
	if ledger != voters {
		t.Errorf("Expected %d ledger entries, got %d", voters, ledger)
	}
}

// TestConcurrentVotes_SameIdentity verifies that when one identity
// races itself, exactly one vote lands.
func TestConcurrentVotes_SameIdentity(t *testing.T) {
	st, eng, _ := setupHandlers(t)
	handler := NewVotingHandler(st, eng)

	poll := testutil.CreateTestPoll(t, st, "Q?", "A", "B")
	optionID := poll.Options[0].ID

	const attempts = 8
	var successCount, rejectedCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/polls/"+poll.ID+"/vote/"+optionID, nil,
				map[string]string{UserTokenHeader: "contested-token"})
			req.SetPathValue("id", poll.ID)
			req.SetPathValue("optionId", optionID)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusBadRequest:
				rejectedCount.Add(1)
			default:
				t.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}
	if rejectedCount.Load() != attempts-1 {
		t.Errorf("Expected %d already-voted rejections, got %d", attempts-1, rejectedCount.Load())
	}

	after, err := st.GetPoll(context.Background(), poll.ID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if after.TotalVotes() != 1 {
		t.Errorf("Expected total 1, got %d", after.TotalVotes())
	}
}
