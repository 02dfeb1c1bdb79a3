package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed set of failure categories surfaced to the user.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindEnvironmentMissing
	KindNetwork
	KindExtraction
	KindConversion
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindEnvironmentMissing:
		return "environment-missing"
	case KindNetwork:
		return "network"
	case KindExtraction:
		return "extraction"
	case KindConversion:
		return "conversion"
	default:
		return "unknown"
	}
}

// Error carries a kind, the operation that failed and the underlying cause.
type Error struct {
	Kind   ErrorKind
	Op     string
	Detail string
	Err    error
}

// NewError builds an *Error. err may be nil.
func NewError(kind ErrorKind, op, detail string, err error) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail, Err: err}
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	parts = append(parts, e.Kind.String())
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	msg := strings.Join(parts, ": ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind so callers can write
// errors.Is(err, &model.Error{Kind: model.KindNetwork}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Cause returns the innermost error text in err's chain.
func Cause(err error) string {
	if err == nil {
		return ""
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return strings.TrimSpace(err.Error())
}

// DisplayMessage maps an error to the text shown in the status line and dialogs.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return "Error: " + Cause(err)
	}
	switch e.Kind {
	case KindValidation:
		if e.Detail != "" {
			return e.Detail
		}
		return "Invalid request"
	case KindEnvironmentMissing:
		return "FFmpeg required but not available. Please install FFmpeg manually or use Install FFmpeg."
	case KindConversion:
		if e.Detail != "" && e.Err == nil {
			return e.Detail
		}
		return "Audio conversion failed: " + Cause(e)
	default:
		if e.Err == nil {
			return "Download failed: " + e.Detail
		}
		return "Download failed: " + Cause(e)
	}
}
