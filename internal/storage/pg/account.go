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

// SaveAccount registers a new account together with its moderation profile
// and baseline capabilities, all in one transaction.
func (s *Storage) SaveAccount(username domain.Username, passHash string) (domain.AccountId, error) {
	var id domain.AccountId
	err := s.withTx(context.Background(), func(tx *sql.Tx) error {
		err := tx.QueryRow(
			"INSERT INTO accounts(username, pass_hash) VALUES($1, $2) RETURNING id",
			username, passHash,
		).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return &internal_errors.ErrorWithStatusCode{
					Message:    "Username already taken",
					StatusCode: http.StatusConflict,
				}
			}
			return fmt.Errorf("failed to insert account: %w", err)
		}

		if _, err := tx.Exec(
			"INSERT INTO moderation_profiles(account_id) VALUES($1)", id,
		); err != nil {
			return fmt.Errorf("failed to create moderation profile: %w", err)
		}

		// Every registered account may open threads; everything else is granted
		// by an administrator.
		if _, err := tx.Exec(
			"INSERT INTO account_capabilities(account_id, capability) VALUES($1, $2)",
			id, string(domain.CapCreateThread),
		); err != nil {
			return fmt.Errorf("failed to grant base capability: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Storage) AccountByUsername(username domain.Username) (domain.Account, error) {
	return s.account(s.db, "username = $1", username)
}

func (s *Storage) AccountById(id domain.AccountId) (domain.Account, error) {
	return s.account(s.db, "id = $1", id)
}

func (s *Storage) account(q Querier, where string, arg interface{}) (domain.Account, error) {
	var account domain.Account
	err := q.QueryRow(
		"SELECT id, username, pass_hash, created FROM accounts WHERE "+where, arg,
	).Scan(&account.Id, &account.Username, &account.PassHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Account not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Account{}, fmt.Errorf("failed to fetch account: %w", err)
	}

	caps, err := s.capabilities(q, account.Id)
	if err != nil {
		return domain.Account{}, err
	}
	account.Capabilities = caps
	return account, nil
}

func (s *Storage) capabilities(q Querier, id domain.AccountId) (domain.Capabilities, error) {
	rows, err := q.Query(
		"SELECT capability FROM account_capabilities WHERE account_id = $1 ORDER BY capability", id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch capabilities: %w", err)
	}
	defer rows.Close()

	var caps domain.Capabilities
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan capability: %w", err)
		}
		caps = append(caps, domain.Capability(c))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("capability rows iteration error: %w", err)
	}
	return caps, nil
}

// GrantCapability is idempotent.
func (s *Storage) GrantCapability(id domain.AccountId, capability domain.Capability) error {
	result, err := s.db.Exec(`
		INSERT INTO account_capabilities(account_id, capability)
		SELECT id, $2 FROM accounts WHERE id = $1
		ON CONFLICT (account_id, capability) DO NOTHING`,
		id, string(capability),
	)
	if err != nil {
		return fmt.Errorf("failed to grant capability: %w", err)
	}
	// Zero affected rows is fine when the grant already exists, but we still
	// need to distinguish a missing account.
	if affected, _ := result.RowsAffected(); affected == 0 {
		var exists bool
		if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)", id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to verify account: %w", err)
		}
		if !exists {
			return &internal_errors.ErrorWithStatusCode{
				Message:    "Account not found",
				StatusCode: http.StatusNotFound,
			}
		}
	}
	return nil
}

func (s *Storage) UsernameTaken(username domain.Username) (bool, error) {
	var taken bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)", username,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return taken, nil
}

// ModerationProfile returns the account's profile. A missing row is treated
// the same as a profile with no ban: never banned.
func (s *Storage) ModerationProfile(id domain.AccountId) (domain.ModerationProfile, error) {
	profile := domain.ModerationProfile{AccountId: id}
	var until sql.NullTime
	err := s.db.QueryRow(
		"SELECT banned_until FROM moderation_profiles WHERE account_id = $1", id,
	).Scan(&until)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profile, nil
		}
		return profile, fmt.Errorf("failed to fetch moderation profile: %w", err)
	}
	if until.Valid {
		t := until.Time.UTC()
		profile.BannedUntil = &t
	}
	return profile, nil
}

// SetBan unconditionally overwrites banned_until. A past date is a valid way
// to lift a ban early, so no validation of the timestamp happens here.
func (s *Storage) SetBan(id domain.AccountId, until time.Time) error {
	result, err := s.db.Exec(`
		INSERT INTO moderation_profiles(account_id, banned_until)
		SELECT id, $2 FROM accounts WHERE id = $1
		ON CONFLICT (account_id) DO UPDATE SET banned_until = EXCLUDED.banned_until`,
		id, until.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set ban: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Account not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}
