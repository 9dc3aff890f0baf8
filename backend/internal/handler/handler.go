package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/itchan-dev/forum/backend/internal/service"
	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/utils"
)

// HealthChecker reports whether the storage can serve requests.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	thread service.ThreadService
	post   service.PostService
	vote   service.VoteService
	health HealthChecker
	cfg    *config.Config
}

func New(thread service.ThreadService, post service.PostService, vote service.VoteService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		thread: thread,
		post:   post,
		vote:   vote,
		health: health,
		cfg:    cfg,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONWithStatus(w, http.StatusOK, v)
}

// writeJSONWithStatus encodes before writing the header so an encoding
// failure can still be reported as 500.
func writeJSONWithStatus(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, fmt.Errorf("encode response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
