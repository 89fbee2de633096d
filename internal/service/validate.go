package service

import (
	"strings"
	"unicode/utf8"
)

// MaxTextLength is the longest idea text accepted, in characters.
const MaxTextLength = 280

// ValidateText checks text against the idea rules and returns it trimmed.
// Emptiness is checked first on the trimmed text; length is checked on the
// text as submitted.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", ErrTextTooLong
	}
	return trimmed, nil
}
