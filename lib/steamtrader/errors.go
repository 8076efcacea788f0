package steamtrader

import (
	"fmt"

	"steamtrader/lib/schema"
)

// ErrorKind names one class of failure the marketplace can report. Every
// kind is itself an error so callers can match with errors.Is.
type ErrorKind string

func (k ErrorKind) Error() string {
	return string(k)
}

const (
	ErrBadRequest           ErrorKind = "bad request"
	ErrUnauthorized         ErrorKind = "unauthorized"
	ErrTooManyRequests      ErrorKind = "too many requests"
	ErrNotEnoughMoney       ErrorKind = "not enough money"
	ErrIncorrectPrice       ErrorKind = "incorrect price"
	ErrItemAlreadySold      ErrorKind = "item already sold"
	ErrNoTradeLink          ErrorKind = "no trade link"
	ErrExpiredTradeLink     ErrorKind = "expired trade link"
	ErrTradeBlock           ErrorKind = "trade block"
	ErrMissingRequiredItems ErrorKind = "missing required items"
	ErrHiddenInventory      ErrorKind = "hidden inventory"
	ErrAuthenticator        ErrorKind = "authenticator error"
	ErrUnknownItem          ErrorKind = "unknown item"
	ErrNoBuyOrders          ErrorKind = "no buy orders"
	ErrNoTradeItems         ErrorKind = "no trade items"
	ErrSaveFail             ErrorKind = "save failed"
	ErrInternal             ErrorKind = "internal error"
	ErrNotFound             ErrorKind = "not found"
	ErrUnsupportedAppID     ErrorKind = "unsupported app id"
	ErrWrongTradeLink       ErrorKind = "wrong trade link"
	ErrOfferCreationFail    ErrorKind = "offer creation failed"
	ErrTradeCreationFail    ErrorKind = "trade creation failed"
	ErrNoSteamAPIKey        ErrorKind = "no steam api key"
	ErrNoLongerExists       ErrorKind = "no longer exists"
)

// ErrStructural matches every decode failure, see schema.Error.
var ErrStructural = schema.ErrStructural

// DomainError is a failure the server reported with a code listed in the
// endpoint's table.
type DomainError struct {
	Kind     ErrorKind
	Endpoint string
	Code     int
	Message  string
}

func (e *DomainError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s: %s: %s", e.Endpoint, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (code %d): %s", e.Endpoint, e.Kind, e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

// UnclassifiedError is a failure whose code the endpoint's table does not
// list, or a failure without a code on an endpoint that treats that as fatal.
type UnclassifiedError struct {
	Endpoint string
	HasCode  bool
	Code     int
	Message  string
}

func (e *UnclassifiedError) Error() string {
	if !e.HasCode {
		return fmt.Sprintf("%s: request failed without a code: %q", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("%s: unclassified code %d: %q", e.Endpoint, e.Code, e.Message)
}

// TransportError wraps failures to reach the server or to read its reply
// as JSON.
type TransportError struct {
	Endpoint string
	// Status is the HTTP status, zero when no response was received.
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: transport: %s", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s: transport (http %d): %s", e.Endpoint, e.Status, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ArgumentError is returned before any I/O when a caller passes a value the
// endpoint does not accept.
type ArgumentError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Name, e.Value, e.Reason)
}
