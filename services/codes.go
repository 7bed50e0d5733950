package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Code generation can collide with the unique indexes; inserts retry with a
// fresh code up to this many times before giving up.
const codeRetryLimit = 5

// newInviteCode returns an 8-character uppercase code for joining a pair.
func newInviteCode() string {
	return strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}

// newAccountID returns the stable public-facing user code used in public
// diary URLs.
func newAccountID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
