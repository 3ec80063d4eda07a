package dberrors

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"feedback-service/internal/apperrors"

	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func sqlState(err error) (string, bool) {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C'), true
	}
	return "", false
}

// IsUniqueViolation reports a unique_violation, optionally for one named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr pgdriver.Error
	if !errors.As(err, &pgErr) || pgErr.Field('C') != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.Field('n') == constraint
}

func IsForeignKeyViolation(err error) bool {
	code, ok := sqlState(err)
	return ok && code == foreignKeyViolation
}

// IsConnectivity reports failures to reach the server: SQLSTATE class 08,
// network errors and connections the pool has already discarded.
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqlState(err); ok {
		return strings.HasPrefix(code, "08")
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Classify turns an unexpected storage error into ErrStorageConnectivity or ErrPersistence.
func Classify(err error) error {
	if IsConnectivity(err) {
		return apperrors.Connectivity(err)
	}
	return apperrors.Persistence(err)
}
