package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	maxUserIDLength  = 64
	maxMessageLength = 2000
)

var (
	ErrUserIDRequired  = errors.New("userId is required")
	ErrUserIDTooLong   = errors.New("userId must be at most 64 characters")
	ErrMessageRequired = errors.New("message is required")
	ErrMessageTooLong  = errors.New("message must be at most 2000 characters")
)

func ValidateUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrUserIDRequired
	}
	if utf8.RuneCountInString(userID) > maxUserIDLength {
		return ErrUserIDTooLong
	}
	return nil
}

func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrMessageRequired
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}
