package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	mw "github.com/itchan-dev/forum/shared/middleware"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int, error) {
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, errors.BadRequest(fmt.Sprintf("Invalid %s: must be an integer", paramName))
	}
	return val, nil
}

// parseIdParam reads a uuid path parameter in canonical form.
func parseIdParam(r *http.Request, paramName string) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, paramName))
	if err != nil {
		return "", errors.BadRequest(fmt.Sprintf("Invalid %s id", paramName))
	}
	return id.String(), nil
}

// currentUser returns the authenticated user or writes 401.
func currentUser(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return domain.User{}, false
	}
	return *user, true
}
