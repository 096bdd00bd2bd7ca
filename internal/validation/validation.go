// Package validation holds the pure field validators for candidate payloads.
// Validators never consult storage or identity; they are functions of the
// payload alone and return every violation, not just the first.
package validation

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 1000
)

type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// dueDateFormats are the accepted due-date shapes: full RFC 3339 timestamps
// and bare calendar dates.
var dueDateFormats = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses a due-date string, trying each accepted format in order.
func ParseDate(value string) (time.Time, error) {
	var err error
	for _, layout := range dueDateFormats {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func titleViolations(title string, required bool) []Violation {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		msg := "title is required and must be a non-empty string"
		if !required {
			msg = "title cannot be empty"
		}
		return []Violation{{Field: "title", Code: "INVALID_TITLE", Message: msg}}
	}
	if utf8.RuneCountInString(trimmed) > maxTitleLen {
		return []Violation{{Field: "title", Code: "TITLE_TOO_LONG", Message: "title must be 100 characters or fewer"}}
	}
	return nil
}

func descriptionViolations(description string) []Violation {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > maxDescriptionLen {
		return []Violation{{Field: "description", Code: "DESCRIPTION_TOO_LONG", Message: "description must be 1000 characters or fewer"}}
	}
	return nil
}

func statusViolations(status string, valid func(string) bool) []Violation {
	if !valid(status) {
		return []Violation{{Field: "status", Code: "INVALID_STATUS", Message: "status must be one of: pending, in_progress, completed"}}
	}
	return nil
}

func dueDateViolations(value string) []Violation {
	if _, err := ParseDate(value); err != nil {
		return []Violation{{Field: "dueDate", Code: "INVALID_DUE_DATE", Message: "due date must be a valid date"}}
	}
	return nil
}
