package service

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable failure classification returned alongside
// every error. The HTTP layer maps kinds to status codes.
type Kind string

const (
	KindInvalidOwner         Kind = "invalid_owner"
	KindProductNotFound      Kind = "product_not_found"
	KindLineNotFound         Kind = "line_not_found"
	KindUnknownProduct       Kind = "unknown_product"
	KindEmptyCheckout        Kind = "empty_checkout"
	KindInvalidLineItem      Kind = "invalid_line_item"
	KindInvalidPaymentStatus Kind = "invalid_payment_status"
	KindAlreadyFinalized     Kind = "already_finalized"
	KindValidation           Kind = "validation"
	KindForbidden            Kind = "forbidden"
	KindNotFound             Kind = "not_found"
	KindInternal             Kind = "internal"
)

// Error pairs a kind with a human-readable message. Infrastructure
// failures are not wrapped in Error; they surface as KindInternal.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func errf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf classifies any error returned by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
