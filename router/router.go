// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/engine"
	"github.com/danielhkuo/livepoll/handlers"
	"github.com/danielhkuo/livepoll/hub"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/store"
)

func NewRouter(st *store.Store, eng *engine.Engine, h *hub.Hub, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(st)
	votingHandler := handlers.NewVotingHandler(st, eng)
	streamHandler := handlers.NewStreamHandler(st, h)
	identityHandler := handlers.NewIdentityHandler()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))

	// Voting
	mux.HandleFunc("POST /polls/{id}/vote/{optionId}", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /polls/{id}/vote", middleware.WithLogging(votingHandler.GetMyVote))

	// Live updates (long-lived, logs its own attach/detach)
	mux.HandleFunc("GET /polls/{id}/updates", streamHandler.Updates)

	// Identity tokens
	mux.HandleFunc("POST /identity", middleware.WithLogging(identityHandler.Issue))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livepoll API v1"))
	})

	return middleware.CORS(mux)
}
