package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/threadly-dev/threadly/internal/domain"
	internal_errors "github.com/threadly-dev/threadly/internal/errors"
)

func (s *Storage) CreateSection(name string) (domain.SectionId, error) {
	var id domain.SectionId
	err := s.db.QueryRow(
		"INSERT INTO sections(name) VALUES($1) RETURNING id", name,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &internal_errors.ErrorWithStatusCode{
				Message:    "Section already exists",
				StatusCode: http.StatusConflict,
			}
		}
		return 0, fmt.Errorf("failed to insert section: %w", err)
	}
	return id, nil
}

func (s *Storage) CreateForum(sectionId domain.SectionId, name, description string) (domain.ForumId, error) {
	var id domain.ForumId
	err := s.db.QueryRow(
		"INSERT INTO forums(section_id, name, description) VALUES($1, $2, $3) RETURNING id",
		sectionId, name, description,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, &internal_errors.ErrorWithStatusCode{
				Message:    "Section not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return 0, fmt.Errorf("failed to insert forum: %w", err)
	}
	return id, nil
}

// Sections returns every section with its forums, for the catalog page.
func (s *Storage) Sections() ([]domain.Section, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.name, f.id, f.section_id, f.name, f.description
		FROM sections s
		LEFT JOIN forums f ON f.section_id = s.id
		ORDER BY s.id, f.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.Section
	for rows.Next() {
		var sectionId domain.SectionId
		var sectionName string
		var forumId, forumSectionId sql.NullInt64
		var forumName, forumDesc sql.NullString
		if err := rows.Scan(&sectionId, &sectionName, &forumId, &forumSectionId, &forumName, &forumDesc); err != nil {
			return nil, fmt.Errorf("failed to scan section row: %w", err)
		}
		if len(sections) == 0 || sections[len(sections)-1].Id != sectionId {
			sections = append(sections, domain.Section{Id: sectionId, Name: sectionName})
		}
		if forumId.Valid {
			current := &sections[len(sections)-1]
			current.Forums = append(current.Forums, domain.ForumMetadata{
				Id:          forumId.Int64,
				SectionId:   forumSectionId.Int64,
				Name:        forumName.String,
				Description: forumDesc.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("section rows iteration error: %w", err)
	}
	return sections, nil
}

func (s *Storage) forumMetadata(q Querier, id domain.ForumId) (domain.ForumMetadata, error) {
	var m domain.ForumMetadata
	err := q.QueryRow(
		"SELECT id, section_id, name, description FROM forums WHERE id = $1", id,
	).Scan(&m.Id, &m.SectionId, &m.Name, &m.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return m, &internal_errors.ErrorWithStatusCode{
				Message:    "Forum not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return m, fmt.Errorf("failed to fetch forum metadata: %w", err)
	}
	return m, nil
}

// ForumPage returns one display page of a forum's threads.
//
// Sort key: pinned DESC, last_activity DESC, thread id ASC as the stable
// tie-break. last_activity is max(created) over the thread's responses; the
// root response always exists, so the join never drops a thread.
//
// Pages are fixed-size (cfg.ThreadsPerPage) and 1-based. A page beyond the
// last clamps to the last valid page rather than erroring.
func (s *Storage) ForumPage(id domain.ForumId, page int) (domain.ForumPage, error) {
	metadata, err := s.forumMetadata(s.db, id)
	if err != nil {
		return domain.ForumPage{}, err
	}

	perPage := s.cfg.Public.ThreadsPerPage

	var threadCount int
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM threads WHERE forum_id = $1", id,
	).Scan(&threadCount); err != nil {
		return domain.ForumPage{}, fmt.Errorf("failed to count threads: %w", err)
	}

	totalPages := (threadCount + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	rows, err := s.db.Query(`
		SELECT
			t.id, t.forum_id, t.title, t.pinned, t.created,
			MAX(r.created) AS last_activity,
			COUNT(r.id) AS num_responses
		FROM threads t
		JOIN responses r ON r.thread_id = t.id
		WHERE t.forum_id = $1
		GROUP BY t.id
		ORDER BY t.pinned DESC, last_activity DESC, t.id ASC
		LIMIT $2 OFFSET $3`,
		id, perPage, (page-1)*perPage,
	)
	if err != nil {
		return domain.ForumPage{}, fmt.Errorf("failed to fetch forum page: %w", err)
	}
	defer rows.Close()

	threads, err := scanThreadMetadata(rows)
	if err != nil {
		return domain.ForumPage{}, err
	}

	return domain.ForumPage{
		ForumMetadata: metadata,
		Page:          page,
		TotalPages:    totalPages,
		Threads:       threads,
	}, nil
}

// LatestThread returns the forum's most recently active thread.
func (s *Storage) LatestThread(id domain.ForumId) (domain.ThreadMetadata, error) {
	if _, err := s.forumMetadata(s.db, id); err != nil {
		return domain.ThreadMetadata{}, err
	}

	rows, err := s.db.Query(`
		SELECT
			t.id, t.forum_id, t.title, t.pinned, t.created,
			MAX(r.created) AS last_activity,
			COUNT(r.id) AS num_responses
		FROM threads t
		JOIN responses r ON r.thread_id = t.id
		WHERE t.forum_id = $1
		GROUP BY t.id
		ORDER BY last_activity DESC, t.id ASC
		LIMIT 1`, id,
	)
	if err != nil {
		return domain.ThreadMetadata{}, fmt.Errorf("failed to fetch latest thread: %w", err)
	}
	defer rows.Close()

	threads, err := scanThreadMetadata(rows)
	if err != nil {
		return domain.ThreadMetadata{}, err
	}
	if len(threads) == 0 {
		return domain.ThreadMetadata{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return threads[0], nil
}

func scanThreadMetadata(rows *sql.Rows) ([]domain.ThreadMetadata, error) {
	var threads []domain.ThreadMetadata
	for rows.Next() {
		var t domain.ThreadMetadata
		if err := rows.Scan(
			&t.Id, &t.Forum, &t.Title, &t.Pinned, &t.CreatedAt,
			&t.LastActivity, &t.NumResponses,
		); err != nil {
			return nil, fmt.Errorf("failed to scan thread metadata: %w", err)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("thread rows iteration error: %w", err)
	}
	return threads, nil
}
