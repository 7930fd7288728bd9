// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/livepoll/hub"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// subscriberBuffer is the per-subscriber channel depth. A consumer
// further behind than this starts losing intermediate snapshots and
// recovers by refetching the poll.
const subscriberBuffer = 8

// keepaliveInterval spaces SSE comment lines that keep idle
// connections open through proxies.
const keepaliveInterval = 15 * time.Second

type StreamHandler struct {
	store *store.Store
	hub   *hub.Hub
}

func NewStreamHandler(st *store.Store, h *hub.Hub) *StreamHandler {
	return &StreamHandler{store: st, hub: h}
}

// Updates handles GET /polls/:id/updates
//
// Server-sent events: every event is a full poll snapshot, pushed each
// time a vote on the poll is accepted. Nothing is replayed on connect;
// the client loads the poll first and then attaches here. The stream
// runs until the client disconnects.
func (h *StreamHandler) Updates(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	if _, err := h.store.GetPoll(r.Context(), pollID); err != nil {
		writeStoreError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	updates := make(chan *models.Poll, subscriberBuffer)
	h.hub.Subscribe(pollID, updates)
	defer h.hub.Unsubscribe(pollID, updates)

	slog.Info("subscriber attached", "poll_id", pollID, "remote", middleware.GetClientIP(r))

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("subscriber detached", "poll_id", pollID)
			return
		case snapshot := <-updates:
			payload, err := json.Marshal(snapshot)
			if err != nil {
				slog.Error("failed to encode snapshot", "error", err, "poll_id", pollID)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				// Client went away; context cancellation follows.
				return
			}
			flusher.Flush()
		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
