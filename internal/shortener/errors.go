package shortener

import (
	"errors"

	"github.com/serroba/shorty/internal/hashid"
)

var (
	// ErrNotFound means the hash has no record.
	ErrNotFound = errors.New("url not found")
	// ErrInvalidInput is the parent of every InputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStoreUnavailable wraps failures of the backing counter or record store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrDecode means a hash does not decode under the configured salt.
	ErrDecode = hashid.ErrDecode
)

// Machine-readable input error codes, compatible with bitly-style clients.
const (
	CodeInvalidURI            = "INVALID_URI"
	CodeInvalidDomain         = "INVALID_ARG_DOMAIN"
	CodeMissingShortURLOrHash = "MISSING_ARG_SHORTURL_OR_HASH"
	CodeInvalidShortURL       = "INVALID_ARG_SHORTURL"
	CodeArgsDontMatch         = "ARGS_DONT_MATCH"
)

// InputError describes a request argument the caller must fix. It matches ErrInvalidInput.
type InputError struct {
	Code  string
	Field string
	Err   error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Field + ": " + e.Err.Error()
	}

	return e.Code + ": " + e.Field
}

func (e *InputError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidInput, e.Err}
	}

	return []error{ErrInvalidInput}
}

func invalid(code, field string, err error) error {
	return &InputError{Code: code, Field: field, Err: err}
}

// NotFoundError names the hash that has no record. It matches ErrNotFound.
type NotFoundError struct {
	Hash Hash
}

func (e *NotFoundError) Error() string {
	return "hash " + string(e.Hash) + ": " + ErrNotFound.Error()
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
