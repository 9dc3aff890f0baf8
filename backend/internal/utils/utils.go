package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/itchan-dev/forum/shared/errors"
)

type ThreadTitleValidator struct {
	MaxLen int
}

func (e *ThreadTitleValidator) Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.BadRequest("Title is empty")
	}
	if utf8.RuneCountInString(title) > e.MaxLen {
		return errors.BadRequest("Title is too long")
	}
	return nil
}

type PostTextValidator struct {
	MaxLen int
}

func (e *PostTextValidator) Text(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.BadRequest("Text is too short")
	}
	if utf8.RuneCountInString(text) > e.MaxLen {
		return errors.BadRequest("Text is too long")
	}
	return nil
}
