package domain

import "time"

type Account struct {
	Id           AccountId
	Username     Username
	PassHash     string `json:"-"`
	CreatedAt    time.Time
	Capabilities Capabilities
}

// ModerationProfile is created at registration and mutated only through the
// ban-administration capability. A nil BannedUntil, or one in the past, means
// the account is unrestricted.
type ModerationProfile struct {
	AccountId   AccountId
	BannedUntil *time.Time
}

// RestrictedAt reports whether the profile bans the account at the given
// instant. Both sides of the comparison are normalized to UTC; mixing naive
// and zone-aware timestamps here is the defect this method exists to prevent.
func (p *ModerationProfile) RestrictedAt(now time.Time) bool {
	if p == nil || p.BannedUntil == nil {
		return false
	}
	return p.BannedUntil.UTC().After(now.UTC())
}
