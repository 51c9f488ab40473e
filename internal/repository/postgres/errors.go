// internal/repository/postgres/errors.go
package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation pq.ErrorCode = "23505"
	pqCheckViolation  pq.ErrorCode = "23514"
)

func isPQError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

func isUniqueViolation(err error) bool { return isPQError(err, pqUniqueViolation) }

func isCheckViolation(err error) bool { return isPQError(err, pqCheckViolation) }
