package service

import (
	"time"

	"github.com/threadly-dev/threadly/internal/domain"
	"github.com/threadly-dev/threadly/internal/errors"
)

type ResponseService interface {
	Create(creationData domain.ResponseCreationData, now time.Time) (domain.Response, error)
	Get(id domain.ResponseId) (domain.Response, error)
	Edit(id domain.ResponseId, message domain.MessageText, actor *domain.Account) error
	Delete(id domain.ResponseId, actor *domain.Account) error
}

type Response struct {
	storage    ResponseStorage
	moderation ModerationGate
	messages   MessageSanitizer
}

type ResponseStorage interface {
	CreateResponse(creationData domain.ResponseCreationData) (domain.Response, error)
	GetResponse(id domain.ResponseId) (domain.Response, error)
	EditResponse(id domain.ResponseId, message domain.MessageText) error
	DeleteResponse(id domain.ResponseId) error
}

func NewResponse(storage ResponseStorage, moderation ModerationGate, messages MessageSanitizer) *Response {
	return &Response{storage, moderation, messages}
}

// Create appends a response to the thread. The ban gate runs first, then
// validation; ordinal assignment happens inside the storage transaction.
func (r *Response) Create(creationData domain.ResponseCreationData, now time.Time) (domain.Response, error) {
	if err := r.moderation.Guard(creationData.Responder.Id, now); err != nil {
		return domain.Response{}, err
	}

	clean, err := r.messages.Message(creationData.Message)
	if err != nil {
		return domain.Response{}, err
	}
	creationData.Message = clean

	return r.storage.CreateResponse(creationData)
}

func (r *Response) Get(id domain.ResponseId) (domain.Response, error) {
	return r.storage.GetResponse(id)
}

// Edit is owner-only: a response's message belongs to its responder, and no
// capability overrides that. Marks the response edited.
func (r *Response) Edit(id domain.ResponseId, message domain.MessageText, actor *domain.Account) error {
	response, err := r.storage.GetResponse(id)
	if err != nil {
		return err
	}
	if actor == nil || actor.Id != response.Responder.Id {
		return errors.Forbidden("Only the responder can edit this response")
	}

	clean, err := r.messages.Message(message)
	if err != nil {
		return err
	}
	return r.storage.EditResponse(id, clean)
}

// Delete refuses the thread's root post with a conflict regardless of who
// asks, then checks ownership/capability. Storage re-verifies the root guard
// under the thread lock and renumbers the survivors atomically.
func (r *Response) Delete(id domain.ResponseId, actor *domain.Account) error {
	response, err := r.storage.GetResponse(id)
	if err != nil {
		return err
	}

	// The ordinal is dense and creation-ordered, so the root post is always
	// ordinal 1. Storage re-checks under the thread lock either way.
	if response.OrderInThread == 1 {
		return errors.Conflict("The root post cannot be deleted - delete the thread instead")
	}

	if !domain.CanMutate(actor, response.Responder.Id, domain.CapRemoveAnyResponse) {
		return errors.Forbidden("You are not allowed to delete this response")
	}

	return r.storage.DeleteResponse(id)
}
