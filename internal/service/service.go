// Package service holds the session and credential lifecycle, the
// authorization engine and the society/event domain operations.
package service

import (
	"errors"
	"regexp"

	"gorm.io/gorm"
)

// bcrypt refuses inputs longer than this many bytes.
const maxPasswordBytes = 72

var (
	namePattern        = regexp.MustCompile(`^[a-zA-Z ]+$`)
	zIDPattern         = regexp.MustCompile(`^z[0-9]{7}$`)
	societyNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
