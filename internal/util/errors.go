// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input provided")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrUserNotFound         = errors.New("user not found")
	ErrMethodNotFound       = errors.New("transaction method not found")
	ErrInvalidMethod        = errors.New("invalid withdrawal method")
	ErrDuplicateTransaction = errors.New("transaction id already exists")
	ErrAlreadyProcessed     = errors.New("request has already been processed")
	ErrNoActivePack         = errors.New("no active pack found for this user")
	ErrUnauthorized         = errors.New("invalid credentials")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
