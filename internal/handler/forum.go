package handler

import (
	"net/http"

	"github.com/threadly-dev/threadly/internal/api"
	mw "github.com/threadly-dev/threadly/internal/middleware"
	"github.com/threadly-dev/threadly/internal/utils"
)

func (h *Handler) GetSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.forum.Sections()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.SectionListResponse{Sections: sections})
}

// GetForum returns one page of the forum's thread listing, ranked pinned
// first and then by last activity.
func (h *Handler) GetForum(w http.ResponseWriter, r *http.Request) {
	forumId, err := idParam(r, "forum")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page, err := pageQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	forumPage, err := h.forum.Page(forumId, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ForumPageResponse{ForumPage: forumPage})
}

func (h *Handler) GetLatestThread(w http.ResponseWriter, r *http.Request) {
	forumId, err := idParam(r, "forum")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	latest, err := h.forum.Latest(forumId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, latest)
}

func (h *Handler) CreateSection(w http.ResponseWriter, r *http.Request) {
	actor := mw.GetAccountFromContext(r)
	if actor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateSectionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.forum.CreateSection(body.Name, actor)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, api.CreatedResponse{Id: id}, http.StatusCreated)
}

func (h *Handler) CreateForum(w http.ResponseWriter, r *http.Request) {
	actor := mw.GetAccountFromContext(r)
	if actor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateForumRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.forum.CreateForum(body.Section, body.Name, body.Description, actor)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, api.CreatedResponse{Id: id}, http.StatusCreated)
}
