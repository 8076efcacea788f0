package schema

import (
	"errors"
	"fmt"
)

// ErrStructural matches every *Error through errors.Is.
var ErrStructural = errors.New("structural decode error")

// Error is returned when a value does not have the shape its schema declares.
type Error struct {
	// Path locates the offending value, e.g. "ItemInfo.sell_offers[2].price".
	Path   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Path, e.Reason)
}

func (e *Error) Unwrap() error {
	return ErrStructural
}

func missing(path string) *Error {
	return &Error{Path: path, Reason: "required field is missing"}
}

func typeError(path, expected string, got any) *Error {
	return &Error{Path: path, Reason: fmt.Sprintf("expected %s, got %s", expected, describe(got))}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
