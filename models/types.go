// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreatePollRequest struct {
	Question string             `json:"question"`
	Options  []CreatePollOption `json:"options"`
}

type CreatePollOption struct {
	Text string `json:"text"`
}

// Response types

type IdentityResponse struct {
	Token string `json:"token"`
}

type MyVoteResponse struct {
	OptionID string `json:"option_id"`
}

// Domain types

// Poll is the full poll representation. The same shape is returned by
// the REST endpoints and pushed to update-stream subscribers, so a
// client can treat every received poll as a complete replacement of
// its local copy.
type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Options   []Option  `json:"options"`
	CreatedAt time.Time `json:"created_at"`
}

type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	VoteCount int    `json:"voteCount"`
}

// TotalVotes sums the tallies of all options.
func (p *Poll) TotalVotes() int {
	total := 0
	for _, opt := range p.Options {
		total += opt.VoteCount
	}
	return total
}

// FindOption returns the option with the given id, or nil.
func (p *Poll) FindOption(optionID string) *Option {
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			return &p.Options[i]
		}
	}
	return nil
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
