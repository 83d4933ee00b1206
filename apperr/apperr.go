// Package apperr carries the numeric status taxonomy of the API. The codes
// double as HTTP status codes and are a stable wire contract; do not renumber.
package apperr

import (
	"errors"
	"fmt"
)

type Code int

const (
	CodeOK                Code = 200
	CodeAuthorizationFail Code = 401
	CodeNonExistUser      Code = 511
	CodeExistUser         Code = 512
	CodeNonExistStore     Code = 513
	CodeExistStore        Code = 514
	CodeNonExistBook      Code = 515
	CodeExistBook         Code = 516
	CodeStockLevelLow     Code = 517
	CodeNotSufficientFund Code = 519
	CodeNonExistOrder     Code = 520
	CodeExistOrder        Code = 521
	CodeOrderStatus       Code = 522
	CodeUserMismatch      Code = 523
	CodeStoreMismatch     Code = 524
	CodeInvalidQuery      Code = 525
	CodeStorage           Code = 528
	CodeInternal          Code = 530
)

type Error struct {
	Code Code
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Code, e.Msg, e.err)
	}
	return fmt.Sprintf("%d: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.err }

func New(code Code, msg string) *Error { return &Error{Code: code, Msg: msg} }

func AuthorizationFail() *Error {
	return New(CodeAuthorizationFail, "authorization fail.")
}

func NonExistUser(userID string) *Error {
	return New(CodeNonExistUser, fmt.Sprintf("non exist user id %s", userID))
}

func ExistUser(userID string) *Error {
	return New(CodeExistUser, fmt.Sprintf("exist user id %s", userID))
}

func NonExistStore(storeID string) *Error {
	return New(CodeNonExistStore, fmt.Sprintf("non exist store id %s", storeID))
}

func ExistStore(storeID string) *Error {
	return New(CodeExistStore, fmt.Sprintf("exist store id %s", storeID))
}

// UserOwnsStore blocks deleting an account that still owns stores; selling
// the stores off first keeps every store reachable through its owner.
func UserOwnsStore(userID string) *Error {
	return New(CodeExistStore, fmt.Sprintf("exist store owned by user %s", userID))
}

func NonExistBook(bookID string) *Error {
	return New(CodeNonExistBook, fmt.Sprintf("non exist book id %s", bookID))
}

func ExistBook(bookID string) *Error {
	return New(CodeExistBook, fmt.Sprintf("exist book id %s", bookID))
}

func StockLevelLow(bookID string) *Error {
	return New(CodeStockLevelLow, fmt.Sprintf("stock level low, book id %s", bookID))
}

func NotSufficientFund(orderID string) *Error {
	return New(CodeNotSufficientFund, fmt.Sprintf("not sufficient funds, order id %s", orderID))
}

func NonExistOrder(orderID string) *Error {
	return New(CodeNonExistOrder, fmt.Sprintf("non exist order id %s", orderID))
}

func ExistOrder(orderID string) *Error {
	return New(CodeExistOrder, fmt.Sprintf("exist order id %s", orderID))
}

func OrderStatusError(state string) *Error {
	return New(CodeOrderStatus, fmt.Sprintf("the order state is error, order state: %s", state))
}

func UserMismatch(want, got string) *Error {
	return New(CodeUserMismatch, fmt.Sprintf("the user is not match %s,%s", want, got))
}

func StoreMismatch(want, got string) *Error {
	return New(CodeStoreMismatch, fmt.Sprintf("the store is not match %s,%s", want, got))
}

func InvalidQuery() *Error {
	return New(CodeInvalidQuery, "invalid behaviour in query book API")
}

// Storage marks a transaction-layer failure (deadlock, timeout, broken
// connection). The whole operation rolled back, so callers may retry.
func Storage(err error) *Error {
	return &Error{Code: CodeStorage, Msg: "storage layer error", err: err}
}

func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Msg: "unexpected internal error", err: err}
}

// Wrap keeps an already-coded error as is and classifies anything else as a
// storage failure. Repositories return raw driver errors; services funnel
// them through here.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return Storage(err)
}

// From normalizes any error to a coded one for the wire. Unknown errors are
// a bug signal and come out as 530.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// CodeOf extracts the code, CodeInternal when the error is not coded.
func CodeOf(err error) Code {
	return From(err).Code
}
