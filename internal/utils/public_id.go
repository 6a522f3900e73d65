package utils

import (
	"github.com/google/uuid"
)

// NewPublicID generates a random (version 4) UUID string used as the
// externally visible identifier of a user, project or task.
func NewPublicID() string {
	return uuid.NewString()
}

// IsPublicID reports whether s is a canonical, hyphenated UUID string.
func IsPublicID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
