package handler

import (
	"net/http"
	"time"

	"github.com/threadly-dev/threadly/internal/api"
	"github.com/threadly-dev/threadly/internal/domain"
	mw "github.com/threadly-dev/threadly/internal/middleware"
	"github.com/threadly-dev/threadly/internal/utils"
)

func (h *Handler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	threadId, err := idParam(r, "thread")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	actor := mw.GetAccountFromContext(r)
	if actor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateResponseRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creation := domain.ResponseCreationData{
		Thread:    threadId,
		Responder: *actor,
		Message:   body.Message,
	}

	response, err := h.response.Create(creation, time.Now())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, response, http.StatusCreated)
}

func (h *Handler) EditResponse(w http.ResponseWriter, r *http.Request) {
	responseId, err := idParam(r, "response")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	actor := mw.GetAccountFromContext(r)
	if actor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body api.EditResponseRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.response.Edit(responseId, body.Message, actor); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteResponse removes a non-root response and renumbers the survivors.
// Deleting the root is refused; the thread itself has to go instead.
func (h *Handler) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	responseId, err := idParam(r, "response")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	actor := mw.GetAccountFromContext(r)
	if actor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.response.Delete(responseId, actor); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
