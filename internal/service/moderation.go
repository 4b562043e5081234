package service

import (
	"time"

	"github.com/threadly-dev/threadly/internal/domain"
	"github.com/threadly-dev/threadly/internal/errors"
	"github.com/threadly-dev/threadly/internal/logger"
)

// ModerationService is the ban gate plus ban administration.
type ModerationService interface {
	IsRestricted(accountId domain.AccountId, now time.Time) (bool, *time.Time, error)
	Guard(accountId domain.AccountId, now time.Time) error
	SetBan(accountId domain.AccountId, until time.Time, actor *domain.Account) error
}

type Moderation struct {
	storage ModerationStorage
}

type ModerationStorage interface {
	ModerationProfile(id domain.AccountId) (domain.ModerationProfile, error)
	SetBan(id domain.AccountId, until time.Time) error
}

func NewModeration(storage ModerationStorage) *Moderation {
	return &Moderation{storage}
}

// IsRestricted reports whether the account is banned at the given instant,
// and if so until when. Absence of a profile means never banned; the
// comparison itself happens in domain with both sides normalized to UTC.
func (m *Moderation) IsRestricted(accountId domain.AccountId, now time.Time) (bool, *time.Time, error) {
	profile, err := m.storage.ModerationProfile(accountId)
	if err != nil {
		return false, nil, err
	}
	if !profile.RestrictedAt(now) {
		return false, nil, nil
	}
	return true, profile.BannedUntil, nil
}

// Guard is the gate invoked by content-mutating actions. Read-only actions
// never call it.
func (m *Moderation) Guard(accountId domain.AccountId, now time.Time) error {
	restricted, until, err := m.IsRestricted(accountId, now)
	if err != nil {
		return err
	}
	if restricted {
		return errors.Banned(*until)
	}
	return nil
}

// SetBan overwrites banned_until unconditionally. Setting a past date is the
// supported way to lift a ban early, so the timestamp is not validated.
func (m *Moderation) SetBan(accountId domain.AccountId, until time.Time, actor *domain.Account) error {
	if actor == nil || !actor.Capabilities.Has(domain.CapBanUsers) {
		return errors.Forbidden("You are not allowed to ban users")
	}
	if err := m.storage.SetBan(accountId, until); err != nil {
		return err
	}
	logger.Log.Info("ban updated", "account", accountId, "until", until.UTC(), "by", actor.Id)
	return nil
}
