package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "plain error", err: errors.New("boom"), expected: http.StatusInternalServerError},
		{name: "not found", err: NotFound("Thread not found"), expected: http.StatusNotFound},
		{name: "wrapped bad request", err: fmt.Errorf("create post: %w", BadRequest("Text is empty")), expected: http.StatusBadRequest},
		{name: "forbidden", err: Forbidden("nope"), expected: http.StatusForbidden},
		{name: "custom", err: New(http.StatusConflict, "exists"), expected: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Thread not found", NotFound("Thread not found").Error())
}
