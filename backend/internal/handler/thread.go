package handler

import (
	"net/http"

	"github.com/itchan-dev/forum/backend/internal/service"
	"github.com/itchan-dev/forum/shared/api"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/utils"
)

const (
	sortNew = "new"
	sortTop = "top"
)

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	threadId, err := h.thread.Create(r.Context(), domain.ThreadCreationData{
		Title:  domain.ThreadTitle(body.Title),
		Author: user,
		OpPost: domain.PostCreationData{
			Author: user,
			Text:   domain.PostText(body.Text),
		},
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONWithStatus(w, http.StatusCreated, api.CreatedResponse{Id: threadId})
}

// GetThread serves the oldest-first prefix of a thread as a two-level tree.
// ?limit=N asks for a longer prefix ("load more"), ?sort=top ranks by score.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var opts service.ViewOptions
	query := r.URL.Query()
	if limitQuery := query.Get("limit"); limitQuery != "" {
		if opts.Limit, err = parseIntParam(limitQuery, "limit"); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}
	switch query.Get("sort") {
	case "", sortNew:
	case sortTop:
		opts.SortByScore = true
	default:
		utils.WriteErrorAndStatusCode(w, errors.BadRequest("Invalid sort: must be new or top"))
		return
	}

	view, err := h.thread.View(r.Context(), threadId, opts)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.NewThreadViewResponse(view))
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.thread.Delete(r.Context(), threadId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) SetBestAnswer(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.BestAnswerRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.SetBestAnswer(r.Context(), threadId, domain.PostId(body.PostId), user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ClearBestAnswer(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.ClearBestAnswer(r.Context(), threadId, user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
