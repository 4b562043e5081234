package handler

import (
	"net/http"
	"time"

	"github.com/threadly-dev/threadly/internal/api"
	mw "github.com/threadly-dev/threadly/internal/middleware"
	"github.com/threadly-dev/threadly/internal/utils"
)

func (h *Handler) BanAccount(w http.ResponseWriter, r *http.Request) {
	accountId, err := idParam(r, "account")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	actor := mw.GetAccountFromContext(r)
	if actor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body api.SetBanRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.moderation.SetBan(accountId, body.Until, actor); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetAccount returns the account's public profile. The ban expiry is only
// included while it is still in effect.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountId, err := idParam(r, "account")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	account, err := h.auth.Account(accountId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	restricted, until, err := h.moderation.IsRestricted(accountId, time.Now())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.AccountResponse{
		Id:        account.Id,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
	}
	if restricted {
		resp.BannedUntil = until
	}
	writeJSON(w, resp)
}
