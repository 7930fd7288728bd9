// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the livepoll API server.

Livepoll is a real-time polling service: anyone can create a poll,
cast one vote per poll per identity token, and watch tallies update
live as other voters act.

# Starting the Server

The server runs on an embedded SQLite database by default:

	go run main.go

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

# Configuration

Optional settings (flags or environment, .env supported):

  - PORT (-p): Server port (default: 8080)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string (default: file:livepoll.db)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - store: poll store and vote ledger (single source of truth)
  - engine: vote application, one-vote-per-identity enforcement
  - hub: per-poll snapshot fan-out to subscribers
  - handlers: HTTP request handlers (polls, voting, streaming, identity)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types
  - identity: opaque voter token handling
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
