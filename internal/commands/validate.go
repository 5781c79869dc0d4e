package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field limits enforced before anything is sent to the server.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

// validateTitle trims title and checks it is present and within bounds.
func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("title required")
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLen {
		return "", fmt.Errorf("title too long: %d characters (max %d)", n, MaxTitleLen)
	}
	return title, nil
}

// validateDescription trims description and checks its length. Empty is
// allowed.
func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if n := utf8.RuneCountInString(description); n > MaxDescriptionLen {
		return "", fmt.Errorf("description too long: %d characters (max %d)", n, MaxDescriptionLen)
	}
	return description, nil
}
