package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/threadly-dev/threadly/internal/domain"
	internal_errors "github.com/threadly-dev/threadly/internal/errors"
)

// Vote applies toggle semantics for the (account, response) pair:
// no reaction -> create; same polarity -> delete (un-vote); opposite
// polarity -> flip in place.
//
// The existing row is locked FOR UPDATE so two votes from the same account
// serialize; the UNIQUE(account_id, response_id) constraint backstops the
// create path, where there is no row to lock yet. A lost insert race comes
// back as a unique violation and is retried as a re-read.
func (s *Storage) Vote(accountId domain.AccountId, responseId domain.ResponseId, like bool) (domain.VoteOutcome, error) {
	var outcome domain.VoteOutcome
	err := s.withTxRetry(context.Background(), func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM responses WHERE id = $1)", responseId,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to verify response: %w", err)
		}
		if !exists {
			return &internal_errors.ErrorWithStatusCode{
				Message:    "Response not found",
				StatusCode: http.StatusNotFound,
			}
		}

		var reactionId domain.ReactionId
		var liked bool
		err := tx.QueryRow(`
			SELECT id, liked FROM reactions
			WHERE account_id = $1 AND response_id = $2
			FOR UPDATE`,
			accountId, responseId,
		).Scan(&reactionId, &liked)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err := tx.Exec(
				"INSERT INTO reactions(account_id, response_id, liked) VALUES($1, $2, $3)",
				accountId, responseId, like,
			)
			if err != nil {
				if isUniqueViolation(err) {
					return errTxConflict
				}
				return fmt.Errorf("failed to insert reaction: %w", err)
			}
			outcome = domain.VoteCreated
			return nil

		case err != nil:
			return fmt.Errorf("failed to fetch reaction: %w", err)

		case liked == like:
			if _, err := tx.Exec("DELETE FROM reactions WHERE id = $1", reactionId); err != nil {
				return fmt.Errorf("failed to delete reaction: %w", err)
			}
			outcome = domain.VoteDeleted
			return nil

		default:
			if _, err := tx.Exec("UPDATE reactions SET liked = $2 WHERE id = $1", reactionId, like); err != nil {
				return fmt.Errorf("failed to flip reaction: %w", err)
			}
			outcome = domain.VoteUpdated
			return nil
		}
	})
	if err != nil {
		return 0, err
	}
	return outcome, nil
}

// Reaction returns the stored reaction for the pair, if any.
func (s *Storage) Reaction(accountId domain.AccountId, responseId domain.ResponseId) (*domain.Reaction, error) {
	var r domain.Reaction
	err := s.db.QueryRow(`
		SELECT id, account_id, response_id, liked FROM reactions
		WHERE account_id = $1 AND response_id = $2`,
		accountId, responseId,
	).Scan(&r.Id, &r.Account, &r.Response, &r.Like)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch reaction: %w", err)
	}
	return &r, nil
}
