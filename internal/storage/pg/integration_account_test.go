package pg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"

	"github.com/threadly-dev/threadly/internal/domain"
	internal_errors "github.com/threadly-dev/threadly/internal/errors"
)

func TestSaveAccount(t *testing.T) {
	t.Run("new account gets profile and base capability", func(t *testing.T) {
		username := uniqueName("alice")
		id, err := storage.SaveAccount(username, "hash")
		require.NoError(t, err)
		require.Greater(t, id, int64(0))

		account, err := storage.AccountById(id)
		require.NoError(t, err)
		assert.Equal(t, username, account.Username)
		assert.True(t, account.Capabilities.Has(domain.CapCreateThread))
		assert.False(t, account.Capabilities.Has(domain.CapBanUsers))

		profile, err := storage.ModerationProfile(id)
		require.NoError(t, err)
		assert.Nil(t, profile.BannedUntil)
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		username := uniqueName("bob")
		_, err := storage.SaveAccount(username, "hash")
		require.NoError(t, err)

		_, err = storage.SaveAccount(username, "otherhash")
		require.Error(t, err)
		assert.True(t, internal_errors.IsConflict(err))
	})

	t.Run("lookup by username matches lookup by id", func(t *testing.T) {
		account := registerAccount(t)

		byName, err := storage.AccountByUsername(account.Username)
		require.NoError(t, err)
		assert.Equal(t, account.Id, byName.Id)
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		_, err := storage.AccountById(999999)
		require.Error(t, err)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestUsernameTaken(t *testing.T) {
	account := registerAccount(t)

	taken, err := storage.UsernameTaken(account.Username)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = storage.UsernameTaken(uniqueName("never_registered"))
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestGrantCapability(t *testing.T) {
	t.Run("grant and regrant", func(t *testing.T) {
		account := registerAccount(t)

		require.NoError(t, storage.GrantCapability(account.Id, domain.CapPinThreads))
		// Idempotent
		require.NoError(t, storage.GrantCapability(account.Id, domain.CapPinThreads))

		reloaded, err := storage.AccountById(account.Id)
		require.NoError(t, err)
		assert.True(t, reloaded.Capabilities.Has(domain.CapPinThreads))
	})

	t.Run("missing account is not found", func(t *testing.T) {
		err := storage.GrantCapability(999999, domain.CapPinThreads)
		require.Error(t, err)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestSetBan(t *testing.T) {
	t.Run("ban roundtrips in UTC", func(t *testing.T) {
		account := registerAccount(t)
		until := time.Date(2030, 1, 2, 3, 4, 5, 0, time.FixedZone("UTC+3", 3*3600))

		require.NoError(t, storage.SetBan(account.Id, until))

		profile, err := storage.ModerationProfile(account.Id)
		require.NoError(t, err)
		require.NotNil(t, profile.BannedUntil)
		assert.Equal(t, time.UTC, profile.BannedUntil.Location())
		assert.True(t, until.Equal(*profile.BannedUntil), "stored instant must equal the requested one")
	})

	t.Run("overwriting with a past date lifts the ban", func(t *testing.T) {
		account := registerAccount(t)
		future := time.Now().Add(24 * time.Hour)
		past := time.Now().Add(-24 * time.Hour)

		require.NoError(t, storage.SetBan(account.Id, future))
		require.NoError(t, storage.SetBan(account.Id, past))

		profile, err := storage.ModerationProfile(account.Id)
		require.NoError(t, err)
		require.NotNil(t, profile.BannedUntil)
		assert.False(t, profile.RestrictedAt(time.Now()))
	})

	t.Run("missing account is not found", func(t *testing.T) {
		err := storage.SetBan(999999, time.Now().Add(time.Hour))
		require.Error(t, err)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}
