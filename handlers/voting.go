// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/livepoll/engine"
	"github.com/danielhkuo/livepoll/identity"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// UserTokenHeader carries the opaque voter identity on vote requests.
const UserTokenHeader = "X-User-Token"

type VotingHandler struct {
	store  *store.Store
	engine *engine.Engine
}

func NewVotingHandler(st *store.Store, eng *engine.Engine) *VotingHandler {
	return &VotingHandler{store: st, engine: eng}
}

// CastVote handles POST /polls/:id/vote/:optionId
//
// On success the response body is the updated poll, the same snapshot
// pushed to update-stream subscribers.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	optionID := r.PathValue("optionId")
	if pollID == "" || optionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id and option_id are required")
		return
	}

	token := r.Header.Get(UserTokenHeader)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, UserTokenHeader+" header required")
		return
	}
	if err := identity.ValidateToken(token); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	poll, err := h.engine.CastVote(r.Context(), pollID, token, optionID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// GetMyVote handles GET /polls/:id/vote
//
// Reports which option the calling identity voted for, so a returning
// client can restore its "already voted" state without guessing.
func (h *VotingHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	token := r.Header.Get(UserTokenHeader)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, UserTokenHeader+" header required")
		return
	}

	// Distinguish "poll missing" from "not voted yet".
	if _, err := h.store.GetPoll(r.Context(), pollID); err != nil {
		writeStoreError(w, err)
		return
	}

	optionID, err := h.store.MyVote(r.Context(), pollID, token)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyVoteResponse{OptionID: optionID})
}
