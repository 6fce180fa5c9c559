package service

import (
	"errors"
	"fmt"
)

// DomainErrorCode categorizes user-facing failures.
type DomainErrorCode string

const (
	// CodeEmptyName rejects a blank user name. Terminal, never retried.
	CodeEmptyName DomainErrorCode = "EMPTY_NAME"

	// CodeDuplicateName rejects a name already taken in the snapshot.
	// Terminal, never retried.
	CodeDuplicateName DomainErrorCode = "DUPLICATE_NAME"

	// CodeUnavailable means every transport attempt failed transiently.
	// The caller may re-invoke the same operation from scratch.
	CodeUnavailable DomainErrorCode = "UNAVAILABLE"

	// CodeUnknown covers any other propagated failure. Surfaced as a generic
	// error, not retried automatically.
	CodeUnknown DomainErrorCode = "UNKNOWN"
)

// DomainError is the failure taxonomy the presentation layer consumes.
// The service is the single translation boundary: transport and executor
// errors never cross it untranslated.
type DomainError struct {
	Code    DomainErrorCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the domain error code, or CodeUnknown for foreign errors.
func CodeOf(err error) DomainErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeUnknown
}

// IsEmptyName returns true for the blank-name validation failure.
func IsEmptyName(err error) bool { return hasCode(err, CodeEmptyName) }

// IsDuplicateName returns true for the name-conflict failure.
func IsDuplicateName(err error) bool { return hasCode(err, CodeDuplicateName) }

// IsUnavailable returns true when retries were exhausted and the caller
// should offer a manual retry.
func IsUnavailable(err error) bool { return hasCode(err, CodeUnavailable) }

func hasCode(err error, code DomainErrorCode) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
