package service

import (
	"time"

	"github.com/threadly-dev/threadly/internal/domain"
	"github.com/threadly-dev/threadly/internal/errors"
)

type ThreadService interface {
	Create(creationData domain.ThreadCreationData, now time.Time) (domain.ThreadId, error)
	Get(id domain.ThreadId) (domain.Thread, error)
	Delete(id domain.ThreadId, actor *domain.Account) error
	SetPin(id domain.ThreadId, pinned bool, actor *domain.Account) error
}

type Thread struct {
	storage    ThreadStorage
	moderation ModerationGate
	titles     ThreadValidator
	messages   MessageSanitizer
}

type ThreadStorage interface {
	CreateThread(creationData domain.ThreadCreationData) (domain.ThreadId, error)
	GetThread(id domain.ThreadId) (domain.Thread, error)
	RootResponder(id domain.ThreadId) (domain.AccountId, error)
	SetPinned(id domain.ThreadId, pinned bool) error
	DeleteThread(id domain.ThreadId) error
}

// ModerationGate is the slice of the moderation service the content services
// need: the ban check for mutating actions.
type ModerationGate interface {
	Guard(accountId domain.AccountId, now time.Time) error
}

type ThreadValidator interface {
	Title(title domain.ThreadTitle) error
}

type MessageSanitizer interface {
	Message(text domain.MessageText) (domain.MessageText, error)
}

func NewThread(storage ThreadStorage, moderation ModerationGate, titles ThreadValidator, messages MessageSanitizer) *Thread {
	return &Thread{storage, moderation, titles, messages}
}

// Create runs the full gauntlet before anything persists: ban gate, thread
// capability, title validation, root-message validation. The thread and its
// root response are then stored as one transaction, so a failure on either
// leaves no orphan thread.
func (t *Thread) Create(creationData domain.ThreadCreationData, now time.Time) (domain.ThreadId, error) {
	actor := creationData.RootMessage.Responder
	if err := t.moderation.Guard(actor.Id, now); err != nil {
		return 0, err
	}
	if !actor.Capabilities.Has(domain.CapCreateThread) {
		return 0, errors.Forbidden("You are not allowed to create threads")
	}

	if err := t.titles.Title(creationData.Title); err != nil {
		return 0, err
	}
	clean, err := t.messages.Message(creationData.RootMessage.Message)
	if err != nil {
		return 0, err
	}
	creationData.RootMessage.Message = clean

	return t.storage.CreateThread(creationData)
}

func (t *Thread) Get(id domain.ThreadId) (domain.Thread, error) {
	return t.storage.GetThread(id)
}

// Delete allows the thread's creator (its root responder) or a holder of the
// thread-deletion capability.
func (t *Thread) Delete(id domain.ThreadId, actor *domain.Account) error {
	ownerId, err := t.storage.RootResponder(id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(actor, ownerId, domain.CapDeleteAnyThread) {
		return errors.Forbidden("You are not allowed to delete this thread")
	}
	return t.storage.DeleteThread(id)
}

// SetPin requires the pin capability unconditionally; owning the thread does
// not grant it.
func (t *Thread) SetPin(id domain.ThreadId, pinned bool, actor *domain.Account) error {
	if !domain.CanPin(actor) {
		return errors.Forbidden("You are not allowed to pin threads")
	}
	return t.storage.SetPinned(id, pinned)
}
