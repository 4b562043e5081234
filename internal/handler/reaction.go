package handler

import (
	"net/http"

	"github.com/threadly-dev/threadly/internal/api"
	"github.com/threadly-dev/threadly/internal/domain"
	mw "github.com/threadly-dev/threadly/internal/middleware"
	"github.com/threadly-dev/threadly/internal/utils"
)

// Vote toggles the caller's reaction on a response: first vote creates it,
// the opposite polarity flips it, the same polarity removes it.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
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

	var body api.VoteRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	outcome, err := h.reaction.Vote(responseId, actor.Id, *body.Like)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.VoteResponse{Outcome: outcome.String()}
	if outcome != domain.VoteDeleted {
		resp.Like = body.Like
	}
	writeJSON(w, resp)
}
