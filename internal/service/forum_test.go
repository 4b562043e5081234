package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadly-dev/threadly/internal/domain"
	internal_errors "github.com/threadly-dev/threadly/internal/errors"
)

type MockForumStorage struct {
	sectionsFunc      func() ([]domain.Section, error)
	forumPageFunc     func(id domain.ForumId, page int) (domain.ForumPage, error)
	latestThreadFunc  func(id domain.ForumId) (domain.ThreadMetadata, error)
	createSectionFunc func(name string) (domain.SectionId, error)
	createForumFunc   func(sectionId domain.SectionId, name, description string) (domain.ForumId, error)

	createSectionCalled bool
	createForumCalled   bool
}

func (m *MockForumStorage) Sections() ([]domain.Section, error) {
	if m.sectionsFunc != nil {
		return m.sectionsFunc()
	}
	return nil, nil
}

func (m *MockForumStorage) ForumPage(id domain.ForumId, page int) (domain.ForumPage, error) {
	if m.forumPageFunc != nil {
		return m.forumPageFunc(id, page)
	}
	return domain.ForumPage{Page: page}, nil
}

func (m *MockForumStorage) LatestThread(id domain.ForumId) (domain.ThreadMetadata, error) {
	if m.latestThreadFunc != nil {
		return m.latestThreadFunc(id)
	}
	return domain.ThreadMetadata{}, nil
}

func (m *MockForumStorage) CreateSection(name string) (domain.SectionId, error) {
	m.createSectionCalled = true
	if m.createSectionFunc != nil {
		return m.createSectionFunc(name)
	}
	return 1, nil
}

func (m *MockForumStorage) CreateForum(sectionId domain.SectionId, name, description string) (domain.ForumId, error) {
	m.createForumCalled = true
	if m.createForumFunc != nil {
		return m.createForumFunc(sectionId, name, description)
	}
	return 1, nil
}

func TestForumPage(t *testing.T) {
	t.Run("page below one becomes the first page", func(t *testing.T) {
		storage := &MockForumStorage{
			forumPageFunc: func(id domain.ForumId, page int) (domain.ForumPage, error) {
				assert.Equal(t, 1, page)
				return domain.ForumPage{Page: page}, nil
			},
		}
		service := NewForum(storage)

		for _, page := range []int{0, -1, -100} {
			result, err := service.Page(3, page)
			require.NoError(t, err)
			assert.Equal(t, 1, result.Page)
		}
	})

	t.Run("regular page passes through", func(t *testing.T) {
		storage := &MockForumStorage{
			forumPageFunc: func(id domain.ForumId, page int) (domain.ForumPage, error) {
				assert.Equal(t, domain.ForumId(3), id)
				assert.Equal(t, 4, page)
				return domain.ForumPage{Page: page, TotalPages: 7}, nil
			},
		}
		service := NewForum(storage)

		result, err := service.Page(3, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, result.Page)
	})
}

func TestForumAdminOps(t *testing.T) {
	admin := &domain.Account{Id: 7, Capabilities: domain.Capabilities{domain.CapBanUsers}}
	regular := &domain.Account{Id: 8}

	t.Run("admin can create sections and forums", func(t *testing.T) {
		storage := &MockForumStorage{}
		service := NewForum(storage)

		_, err := service.CreateSection("General", admin)
		require.NoError(t, err)
		assert.True(t, storage.createSectionCalled)

		_, err = service.CreateForum(1, "Go", "All things Go", admin)
		require.NoError(t, err)
		assert.True(t, storage.createForumCalled)
	})

	t.Run("regular account cannot", func(t *testing.T) {
		storage := &MockForumStorage{}
		service := NewForum(storage)

		_, err := service.CreateSection("General", regular)
		require.Error(t, err)
		assert.True(t, internal_errors.IsForbidden(err))

		_, err = service.CreateForum(1, "Go", "", regular)
		require.Error(t, err)
		assert.True(t, internal_errors.IsForbidden(err))
		assert.False(t, storage.createSectionCalled)
		assert.False(t, storage.createForumCalled)
	})
}
