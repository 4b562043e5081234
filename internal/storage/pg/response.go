package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/threadly-dev/threadly/internal/domain"
	internal_errors "github.com/threadly-dev/threadly/internal/errors"
)

// CreateResponse appends a response to its thread. The thread row is locked
// for the duration of the transaction, which serializes ordinal assignment:
// two concurrent appends can never read the same count.
func (s *Storage) CreateResponse(creationData domain.ResponseCreationData) (domain.Response, error) {
	var saved domain.Response
	err := s.withTxRetry(context.Background(), func(tx *sql.Tx) error {
		if err := lockThread(tx, creationData.Thread); err != nil {
			return err
		}

		var count int
		var lastCreated sql.NullTime
		err := tx.QueryRow(
			"SELECT COUNT(*), MAX(created) FROM responses WHERE thread_id = $1",
			creationData.Thread,
		).Scan(&count, &lastCreated)
		if err != nil {
			return fmt.Errorf("failed to count responses: %w", err)
		}

		// created_at is monotonic per thread: never at or before the thread's
		// current newest response, even if the wall clock stands still.
		createdTs := utcNow()
		if lastCreated.Valid && !createdTs.After(lastCreated.Time) {
			createdTs = lastCreated.Time.Add(time.Microsecond)
		}

		saved = domain.Response{
			Thread:        creationData.Thread,
			Responder:     creationData.Responder,
			Message:       creationData.Message,
			CreatedAt:     createdTs,
			OrderInThread: count + 1,
		}
		err = tx.QueryRow(`
			INSERT INTO responses(thread_id, responder_id, message, created, ordinal)
			VALUES($1, $2, $3, $4, $5)
			RETURNING id`,
			saved.Thread, saved.Responder.Id, saved.Message, saved.CreatedAt, saved.OrderInThread,
		).Scan(&saved.Id)
		if err != nil {
			if isUniqueViolation(err) {
				return errTxConflict
			}
			return fmt.Errorf("failed to insert response: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Response{}, err
	}
	return saved, nil
}

func (s *Storage) GetResponse(id domain.ResponseId) (domain.Response, error) {
	var r domain.Response
	err := s.db.QueryRow(`
		SELECT r.id, r.thread_id, r.message, r.created, r.ordinal, r.edited,
		       a.id, a.username
		FROM responses r
		JOIN accounts a ON a.id = r.responder_id
		WHERE r.id = $1`, id,
	).Scan(
		&r.Id, &r.Thread, &r.Message, &r.CreatedAt, &r.OrderInThread, &r.Edited,
		&r.Responder.Id, &r.Responder.Username,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Response{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Response not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Response{}, fmt.Errorf("failed to fetch response: %w", err)
	}
	return r, nil
}

// EditResponse replaces the message and marks the response edited. Ordering
// is untouched.
func (s *Storage) EditResponse(id domain.ResponseId, message domain.MessageText) error {
	result, err := s.db.Exec(
		"UPDATE responses SET message = $2, edited = TRUE WHERE id = $1",
		id, message,
	)
	if err != nil {
		return fmt.Errorf("failed to edit response: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Response not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}

// DeleteResponse removes a non-root response and renumbers the survivors to a
// dense 1..N in creation order, atomically with respect to concurrent appends
// and deletes on the same thread (the thread row lock serializes them).
//
// The root-post guard runs inside the transaction: even a caller that already
// checked gets the authoritative answer under the lock.
func (s *Storage) DeleteResponse(id domain.ResponseId) error {
	return s.withTxRetry(context.Background(), func(tx *sql.Tx) error {
		var threadId domain.ThreadId
		err := tx.QueryRow("SELECT thread_id FROM responses WHERE id = $1", id).Scan(&threadId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &internal_errors.ErrorWithStatusCode{
					Message:    "Response not found",
					StatusCode: http.StatusNotFound,
				}
			}
			return fmt.Errorf("failed to resolve response thread: %w", err)
		}

		if err := lockThread(tx, threadId); err != nil {
			return err
		}

		var rootId domain.ResponseId
		err = tx.QueryRow(`
			SELECT id FROM responses
			WHERE thread_id = $1
			ORDER BY created ASC, id ASC
			LIMIT 1`, threadId,
		).Scan(&rootId)
		if err != nil {
			return fmt.Errorf("failed to identify root response: %w", err)
		}
		if rootId == id {
			return &internal_errors.ErrorWithStatusCode{
				Message:    "The root post cannot be deleted - delete the thread instead",
				StatusCode: http.StatusConflict,
			}
		}

		// Reactions cascade via foreign key.
		result, err := tx.Exec("DELETE FROM responses WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete response: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return &internal_errors.ErrorWithStatusCode{
				Message:    "Response not found",
				StatusCode: http.StatusNotFound,
			}
		}

		// Recompute every ordinal from creation order.
		_, err = tx.Exec(`
			UPDATE responses r
			SET ordinal = ranked.rn
			FROM (
				SELECT id, ROW_NUMBER() OVER (ORDER BY created ASC, id ASC) AS rn
				FROM responses
				WHERE thread_id = $1
			) ranked
			WHERE r.id = ranked.id AND r.ordinal <> ranked.rn`, threadId,
		)
		if err != nil {
			return fmt.Errorf("failed to renumber responses: %w", err)
		}
		return nil
	})
}

// lockThread takes the per-thread row lock that serializes ordinal-touching
// operations on the same thread.
func lockThread(tx *sql.Tx, id domain.ThreadId) error {
	var locked domain.ThreadId
	err := tx.QueryRow("SELECT id FROM threads WHERE id = $1 FOR UPDATE", id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &internal_errors.ErrorWithStatusCode{
				Message:    "Thread not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return fmt.Errorf("failed to lock thread: %w", err)
	}
	return nil
}
