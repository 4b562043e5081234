package service

import (
	"github.com/threadly-dev/threadly/internal/domain"
	"github.com/threadly-dev/threadly/internal/errors"
)

type ForumService interface {
	Sections() ([]domain.Section, error)
	Page(id domain.ForumId, page int) (domain.ForumPage, error)
	Latest(id domain.ForumId) (domain.ThreadMetadata, error)
	CreateSection(name string, actor *domain.Account) (domain.SectionId, error)
	CreateForum(sectionId domain.SectionId, name, description string, actor *domain.Account) (domain.ForumId, error)
}

type Forum struct {
	storage ForumStorage
}

type ForumStorage interface {
	Sections() ([]domain.Section, error)
	ForumPage(id domain.ForumId, page int) (domain.ForumPage, error)
	LatestThread(id domain.ForumId) (domain.ThreadMetadata, error)
	CreateSection(name string) (domain.SectionId, error)
	CreateForum(sectionId domain.SectionId, name, description string) (domain.ForumId, error)
}

func NewForum(storage ForumStorage) *Forum {
	return &Forum{storage}
}

func (f *Forum) Sections() ([]domain.Section, error) {
	return f.storage.Sections()
}

// Page returns one display page of the forum's threads. Page numbers are
// 1-based; anything below 1 means the first page, anything beyond the last
// page clamps to the last page inside storage.
func (f *Forum) Page(id domain.ForumId, page int) (domain.ForumPage, error) {
	page = max(1, page)
	return f.storage.ForumPage(id, page)
}

func (f *Forum) Latest(id domain.ForumId) (domain.ThreadMetadata, error) {
	return f.storage.LatestThread(id)
}

// Section and forum creation is administrative housekeeping, gated on the
// ban-administration capability like the rest of the moderator surface.
func (f *Forum) CreateSection(name string, actor *domain.Account) (domain.SectionId, error) {
	if actor == nil || !actor.Capabilities.Has(domain.CapBanUsers) {
		return 0, errors.Forbidden("You are not allowed to manage sections")
	}
	return f.storage.CreateSection(name)
}

func (f *Forum) CreateForum(sectionId domain.SectionId, name, description string, actor *domain.Account) (domain.ForumId, error) {
	if actor == nil || !actor.Capabilities.Has(domain.CapBanUsers) {
		return 0, errors.Forbidden("You are not allowed to manage forums")
	}
	return f.storage.CreateForum(sectionId, name, description)
}
