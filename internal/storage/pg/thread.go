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

// CreateThread inserts the thread and its root response as a single logical
// operation. If the root response insert fails for any reason the whole
// transaction rolls back, so no orphan thread can persist.
func (s *Storage) CreateThread(creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	var id domain.ThreadId
	err := s.withTx(context.Background(), func(tx *sql.Tx) error {
		// Verify forum exists
		if _, err := s.forumMetadata(tx, creationData.Forum); err != nil {
			return err
		}

		createdTs := utcNow()
		err := tx.QueryRow(
			"INSERT INTO threads(forum_id, title, created) VALUES($1, $2, $3) RETURNING id",
			creationData.Forum, creationData.Title, createdTs,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert thread: %w", err)
		}

		// Root response shares the thread's creation timestamp and always
		// takes ordinal 1.
		_, err = tx.Exec(`
			INSERT INTO responses(thread_id, responder_id, message, created, ordinal)
			VALUES($1, $2, $3, $4, 1)`,
			id, creationData.RootMessage.Responder.Id, creationData.RootMessage.Message, createdTs,
		)
		if err != nil {
			return fmt.Errorf("failed to insert root response: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Storage) threadMetadata(q Querier, id domain.ThreadId) (domain.ThreadMetadata, error) {
	var m domain.ThreadMetadata
	err := q.QueryRow(`
		SELECT
			t.id, t.forum_id, t.title, t.pinned, t.created,
			MAX(r.created), COUNT(r.id)
		FROM threads t
		JOIN responses r ON r.thread_id = t.id
		WHERE t.id = $1
		GROUP BY t.id`, id,
	).Scan(&m.Id, &m.Forum, &m.Title, &m.Pinned, &m.CreatedAt, &m.LastActivity, &m.NumResponses)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return m, &internal_errors.ErrorWithStatusCode{
				Message:    "Thread not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return m, fmt.Errorf("failed to fetch thread metadata: %w", err)
	}
	return m, nil
}

// GetThread returns the thread with all responses in creation order.
func (s *Storage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	metadata, err := s.threadMetadata(s.db, id)
	if err != nil {
		return domain.Thread{}, err
	}

	rows, err := s.db.Query(`
		SELECT r.id, r.thread_id, r.message, r.created, r.ordinal, r.edited,
		       a.id, a.username
		FROM responses r
		JOIN accounts a ON a.id = r.responder_id
		WHERE r.thread_id = $1
		ORDER BY r.created ASC, r.id ASC`, id,
	)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to fetch responses: %w", err)
	}
	defer rows.Close()

	var responses []*domain.Response
	for rows.Next() {
		var r domain.Response
		if err := rows.Scan(
			&r.Id, &r.Thread, &r.Message, &r.CreatedAt, &r.OrderInThread, &r.Edited,
			&r.Responder.Id, &r.Responder.Username,
		); err != nil {
			return domain.Thread{}, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, &r)
	}
	if err := rows.Err(); err != nil {
		return domain.Thread{}, fmt.Errorf("response rows iteration error: %w", err)
	}

	return domain.Thread{ThreadMetadata: metadata, Responses: responses}, nil
}

// RootResponder returns the account that created the thread's earliest
// response, i.e. the thread's owner.
func (s *Storage) RootResponder(id domain.ThreadId) (domain.AccountId, error) {
	var responderId domain.AccountId
	err := s.db.QueryRow(`
		SELECT responder_id FROM responses
		WHERE thread_id = $1
		ORDER BY created ASC, id ASC
		LIMIT 1`, id,
	).Scan(&responderId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, &internal_errors.ErrorWithStatusCode{
				Message:    "Thread not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return 0, fmt.Errorf("failed to fetch root responder: %w", err)
	}
	return responderId, nil
}

func (s *Storage) SetPinned(id domain.ThreadId, pinned bool) error {
	result, err := s.db.Exec("UPDATE threads SET pinned = $2 WHERE id = $1", id, pinned)
	if err != nil {
		return fmt.Errorf("failed to update pinned flag: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}

// DeleteThread removes the thread; responses and their reactions cascade.
func (s *Storage) DeleteThread(id domain.ThreadId) error {
	result, err := s.db.Exec("DELETE FROM threads WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}
