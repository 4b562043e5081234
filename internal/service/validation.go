package service

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/threadly-dev/threadly/internal/domain"
	"github.com/threadly-dev/threadly/internal/errors"
)

const maxTitleLen = 200

// MessageValidator bounds and sanitizes user-supplied message text.
// Sanitization strips all markup; the forum stores plain text only.
type MessageValidator struct {
	maxLen int
	policy *bluemonday.Policy
}

func NewMessageValidator(maxLen int) *MessageValidator {
	if maxLen <= 0 {
		maxLen = domain.MaxMessageLen
	}
	return &MessageValidator{maxLen: maxLen, policy: bluemonday.StrictPolicy()}
}

// Message validates and returns the sanitized form to persist. The length
// bound applies to the sanitized text, which is what gets stored: bluemonday
// entity-escapes markup characters, so the persisted form can be longer than
// the raw input.
func (v *MessageValidator) Message(text domain.MessageText) (domain.MessageText, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.Validation("Message must not be empty")
	}
	sanitized := strings.TrimSpace(v.policy.Sanitize(trimmed))
	if sanitized == "" {
		return "", errors.Validation("Message must not be empty")
	}
	if utf8.RuneCountInString(sanitized) > v.maxLen {
		return "", errors.Validation("Message is too long")
	}
	return sanitized, nil
}

type TitleValidator struct{}

func (v *TitleValidator) Title(title domain.ThreadTitle) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return errors.Validation("Title must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxTitleLen {
		return errors.Validation("Title is too long")
	}
	return nil
}
