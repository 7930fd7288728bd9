// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/models"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("option not found")
	ErrInvalidOption  = errors.New("option does not belong to poll")
	ErrAlreadyVoted   = errors.New("already voted")
	ErrNotVoted       = errors.New("no vote recorded")
)

// querier is satisfied by both *sql.DB and *sql.Tx, so read helpers can
// run inside or outside a vote transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store owns the poll and vote tables. It is safe for concurrent use;
// all cross-row atomicity (ledger insert + tally increment) is done in
// transactions handed out by Begin.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Begin starts a transaction for a vote application.
func (s *Store) Begin(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// CreatePoll validates and inserts a new poll with its options.
// The question and at least 2 option texts must be non-empty; blank
// option texts are discarded before the count check.
func (s *Store) CreatePoll(ctx context.Context, question string, optionTexts []string) (*models.Poll, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}

	texts := make([]string, 0, len(optionTexts))
	for _, text := range optionTexts {
		if t := strings.TrimSpace(text); t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) < 2 {
		return nil, fmt.Errorf("%w: at least 2 options are required", ErrInvalidInput)
	}

	poll := &models.Poll{
		ID:        uuid.NewString(),
		Question:  question,
		Options:   make([]models.Option, 0, len(texts)),
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create poll: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, question, created_at)
		VALUES ($1, $2, $3)
	`, poll.ID, poll.Question, poll.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert poll: %w", err)
	}

	for position, text := range texts {
		opt := models.Option{
			ID:   uuid.NewString(),
			Text: text,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO option (id, poll_id, text, position, vote_count)
			VALUES ($1, $2, $3, $4, 0)
		`, opt.ID, poll.ID, opt.Text, position)
		if err != nil {
			return nil, fmt.Errorf("insert option: %w", err)
		}
		poll.Options = append(poll.Options, opt)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create poll: %w", err)
	}

	return poll, nil
}

// GetPoll returns the full poll snapshot, or ErrPollNotFound.
func (s *Store) GetPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	return getPoll(ctx, s.db, pollID)
}

// GetPollTx is GetPoll inside an open transaction, used to read the
// post-increment snapshot before commit.
func (s *Store) GetPollTx(ctx context.Context, tx *sql.Tx, pollID string) (*models.Poll, error) {
	return getPoll(ctx, tx, pollID)
}

func getPoll(ctx context.Context, q querier, pollID string) (*models.Poll, error) {
	var poll models.Poll
	err := q.QueryRowContext(ctx, `
		SELECT id, question, created_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Question, &poll.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query poll: %w", err)
	}

	options, err := pollOptions(ctx, q, pollID)
	if err != nil {
		return nil, err
	}
	poll.Options = options

	return &poll, nil
}

func pollOptions(ctx context.Context, q querier, pollID string) ([]models.Option, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, text, vote_count
		FROM option
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.Text, &opt.VoteCount); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

// ListPolls returns all polls in creation order.
func (s *Store) ListPolls(ctx context.Context) ([]*models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, created_at
		FROM poll
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query polls: %w", err)
	}

	polls := []*models.Poll{}
	for rows.Next() {
		var poll models.Poll
		if err := rows.Scan(&poll.ID, &poll.Question, &poll.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan poll: %w", err)
		}
		polls = append(polls, &poll)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, poll := range polls {
		options, err := pollOptions(ctx, s.db, poll.ID)
		if err != nil {
			return nil, err
		}
		poll.Options = options
	}

	return polls, nil
}

// ResolveOption verifies that the poll exists and that the option
// belongs to it. Returns ErrPollNotFound, ErrOptionNotFound, or
// ErrInvalidOption when the option is owned by a different poll.
func (s *Store) ResolveOption(ctx context.Context, q querier, pollID, optionID string) error {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)
	`, pollID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("query poll existence: %w", err)
	}
	if !exists {
		return ErrPollNotFound
	}

	var owner string
	err = q.QueryRowContext(ctx, `
		SELECT poll_id FROM option WHERE id = $1
	`, optionID).Scan(&owner)
	if err == sql.ErrNoRows {
		return ErrOptionNotFound
	}
	if err != nil {
		return fmt.Errorf("query option owner: %w", err)
	}
	if owner != pollID {
		return ErrInvalidOption
	}
	return nil
}

// TryRecordVote atomically inserts the (pollID, voterToken) ledger
// entry if absent. Reports whether the vote was accepted; false means
// the identity already voted on this poll. The insert-if-absent runs
// as a single statement, so two concurrent duplicates cannot both
// observe "absent".
func (s *Store) TryRecordVote(ctx context.Context, tx *sql.Tx, pollID, voterToken, optionID string) (bool, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO vote (poll_id, voter_token, option_id, cast_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (poll_id, voter_token) DO NOTHING
	`, pollID, voterToken, optionID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("insert vote: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("vote rows affected: %w", err)
	}
	return inserted == 1, nil
}

// IncrementOption adds 1 to the option tally.
func (s *Store) IncrementOption(ctx context.Context, tx *sql.Tx, pollID, optionID string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE option
		SET vote_count = vote_count + 1
		WHERE id = $1 AND poll_id = $2
	`, optionID, pollID)
	if err != nil {
		return fmt.Errorf("increment option: %w", err)
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment rows affected: %w", err)
	}
	if updated == 0 {
		return ErrOptionNotFound
	}
	return nil
}

// MyVote returns the option id this identity voted for on the poll, or
// ErrNotVoted. The ledger keeps the chosen option exactly so this
// lookup never has to re-derive it from tallies.
func (s *Store) MyVote(ctx context.Context, pollID, voterToken string) (string, error) {
	var optionID string
	err := s.db.QueryRowContext(ctx, `
		SELECT option_id FROM vote
		WHERE poll_id = $1 AND voter_token = $2
	`, pollID, voterToken).Scan(&optionID)
	if err == sql.ErrNoRows {
		return "", ErrNotVoted
	}
	if err != nil {
		return "", fmt.Errorf("query vote: %w", err)
	}
	return optionID, nil
}

// VoteCount returns the number of ledger entries for a poll. For every
// poll this equals the sum of its option tallies.
func (s *Store) VoteCount(ctx context.Context, pollID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vote WHERE poll_id = $1
	`, pollID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count votes: %w", err)
	}
	return count, nil
}
