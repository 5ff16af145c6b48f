// Package domainerrors provides code-tagged domain errors shared by
// services, stores and the HTTP layer. Services attach a Code describing
// the failure condition; transports translate codes to status codes
// without parsing messages.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain failure.
type Code string

const (
	// Governance taxonomy.
	CodeInvalidAddress    Code = "invalid_address"
	CodeUnknownResidence  Code = "unknown_residence"
	CodeUnknownTopic      Code = "unknown_topic"
	CodeDuplicate         Code = "duplicate"
	CodeNotFound          Code = "not_found"
	CodeProtectedRole     Code = "protected_role"
	CodeForbidden         Code = "forbidden"
	CodeIllegalState      Code = "illegal_state"
	CodeInvalidAmount     Code = "invalid_amount"
	CodeEmptyOption       Code = "empty_option"
	CodeDuplicateVote     Code = "duplicate_vote"
	CodeMustHavePaid      Code = "must_have_paid"
	CodeQuorumNotMet      Code = "quorum_not_met"
	CodeWrongValue        Code = "wrong_value"
	CodeAlreadyPaid       Code = "already_paid"
	CodeInsufficientFunds Code = "insufficient_funds"
	CodeAmountExceeded    Code = "amount_exceeded"
	CodeNotUpgraded       Code = "not_upgraded"

	// Transport and infrastructure.
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeInternal     Code = "internal"
)

// Error is a failure tagged with a Code. The message names the entity or
// condition that triggered it; callers surface it verbatim.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is match two domain errors carrying the same code and
// message, regardless of identity.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == other.Code && e.Message == other.Message
}

// New builds a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap annotates err with a code and message while keeping the cause
// reachable through errors.Is/errors.As.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or any error it wraps) carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// Is is an alias for HasCode kept for readability at call sites.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf extracts the outermost code carried by err, or CodeInternal when
// err is not a domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to the HTTP status the transport layer should
// answer with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidAddress, CodeInvalidAmount, CodeEmptyOption, CodeWrongValue, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodeProtectedRole:
		return http.StatusForbidden
	case CodeNotFound, CodeUnknownResidence, CodeUnknownTopic:
		return http.StatusNotFound
	case CodeDuplicate, CodeDuplicateVote, CodeAlreadyPaid, CodeIllegalState:
		return http.StatusConflict
	case CodeMustHavePaid, CodeQuorumNotMet, CodeInsufficientFunds, CodeAmountExceeded:
		return http.StatusUnprocessableEntity
	case CodeNotUpgraded:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
