package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/threadly-dev/threadly/internal/config"
	"github.com/threadly-dev/threadly/internal/logger"
	"github.com/threadly-dev/threadly/internal/service"
)

// Pinger is the readiness-probe view of the storage layer.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth       service.AuthService
	forum      service.ForumService
	thread     service.ThreadService
	response   service.ResponseService
	reaction   service.ReactionService
	moderation service.ModerationService
	health     Pinger
	cfg        *config.Config
}

func New(
	auth service.AuthService,
	forum service.ForumService,
	thread service.ThreadService,
	response service.ResponseService,
	reaction service.ReactionService,
	moderation service.ModerationService,
	health Pinger,
	cfg *config.Config,
) *Handler {
	return &Handler{auth, forum, thread, response, reaction, moderation, health, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, v, http.StatusOK)
}

func writeJSONStatus(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
