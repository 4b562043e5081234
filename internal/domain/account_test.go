package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestModerationProfileRestrictedAt(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	t.Run("nil profile is unrestricted", func(t *testing.T) {
		var p *ModerationProfile
		assert.False(t, p.RestrictedAt(now))
	})

	t.Run("nil expiry is unrestricted", func(t *testing.T) {
		p := &ModerationProfile{AccountId: 1}
		assert.False(t, p.RestrictedAt(now))
	})

	t.Run("future expiry restricts", func(t *testing.T) {
		p := &ModerationProfile{AccountId: 1, BannedUntil: &future}
		assert.True(t, p.RestrictedAt(now))
	})

	t.Run("past expiry does not restrict", func(t *testing.T) {
		p := &ModerationProfile{AccountId: 1, BannedUntil: &past}
		assert.False(t, p.RestrictedAt(now))
	})

	t.Run("expiry equal to now does not restrict", func(t *testing.T) {
		p := &ModerationProfile{AccountId: 1, BannedUntil: &now}
		assert.False(t, p.RestrictedAt(now))
	})

	t.Run("zones do not change the verdict", func(t *testing.T) {
		// Same instant as `future`, rendered in another zone.
		shifted := future.In(time.FixedZone("UTC-7", -7*3600))
		p := &ModerationProfile{AccountId: 1, BannedUntil: &shifted}

		assert.True(t, p.RestrictedAt(now))
		assert.True(t, p.RestrictedAt(now.In(time.FixedZone("UTC+9", 9*3600))))
		assert.False(t, p.RestrictedAt(future.Add(time.Minute)))
	})
}

func TestThreadRoot(t *testing.T) {
	t.Run("empty thread has no root", func(t *testing.T) {
		thread := &Thread{}
		assert.Nil(t, thread.Root())
	})

	t.Run("first loaded response is the root", func(t *testing.T) {
		thread := &Thread{Responses: []*Response{
			{Id: 10, OrderInThread: 1},
			{Id: 11, OrderInThread: 2},
		}}
		assert.Equal(t, ResponseId(10), thread.Root().Id)
	})
}
