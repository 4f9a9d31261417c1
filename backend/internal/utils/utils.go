package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/kevinclancy/kboard/shared/errors"
)

// TextValidator enforces length limits on user supplied text. Lengths are
// counted in runes and text made only of whitespace counts as empty.
type TextValidator struct {
	maxTitle int
	maxBody  int
	maxName  int
}

func NewTextValidator(maxTitle, maxBody int) *TextValidator {
	return &TextValidator{maxTitle: maxTitle, maxBody: maxBody, maxName: 64}
}

func checkLength(field, s string, limit int) error {
	if strings.TrimSpace(s) == "" {
		return errors.BadRequest(field + " is too short")
	}
	if utf8.RuneCountInString(s) > limit {
		return errors.BadRequest(field + " is too long")
	}
	return nil
}

func (v *TextValidator) Title(title string) error {
	return checkLength("Title", title, v.maxTitle)
}

func (v *TextValidator) Body(body string) error {
	return checkLength("Body", body, v.maxBody)
}

func (v *TextValidator) Name(name string) error {
	return checkLength("Name", name, v.maxName)
}
