// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livepoll/identity"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
)

type IdentityHandler struct{}

func NewIdentityHandler() *IdentityHandler {
	return &IdentityHandler{}
}

// Issue handles POST /identity
//
// Mints an opaque voter token for clients that do not generate their
// own. The server keeps no record of issued tokens; they only matter
// once used to vote.
func (h *IdentityHandler) Issue(w http.ResponseWriter, r *http.Request) {
	token, err := identity.NewToken()
	if err != nil {
		slog.Error("failed to generate identity token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.IdentityResponse{Token: token})
}
