package jwkset

import (
	"errors"
	"fmt"

	"github.com/tokenkit/jwkset/internal/keymaterial"
	"github.com/tokenkit/jwkset/pubkey"
)

// Sentinel errors. Every error returned by this package matches exactly one
// of them through errors.Is, except ErrAmbiguousKey which also matches
// ErrKeyNotFound.
var (
	// ErrMalformedDocument is returned when the document is not a JSON object
	// with a "keys" array, or an entry is not shaped like a JSON Web Key.
	ErrMalformedDocument = errors.New("malformed JWKS document")

	// ErrMissingField is returned when a required member of an entry is absent.
	ErrMissingField = pubkey.ErrMissingParameter

	// ErrUnsupportedKeyType is returned when no builder exists for the declared "kty".
	ErrUnsupportedKeyType = pubkey.ErrUnsupportedKeyType

	// ErrDecode is returned when base64url key material cannot be decoded.
	ErrDecode = keymaterial.ErrDecode

	// ErrInvalidKeySpec is returned when key parameters do not form a valid key.
	ErrInvalidKeySpec = pubkey.ErrInvalidKeySpec

	// ErrDuplicateKey is returned when two entries share the same type and id.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrKeyNotFound is returned when no key matches a lookup.
	ErrKeyNotFound = errors.New("key not found")

	// ErrAmbiguousKey is returned when a lookup without an id cannot be
	// resolved to a single key.
	ErrAmbiguousKey = errors.New("ambiguous key lookup")
)

// Error codes.
const (
	ErrorCodeMalformedDocument  = "malformed_document"
	ErrorCodeMissingField       = "missing_field"
	ErrorCodeUnsupportedKeyType = "unsupported_key_type"
	ErrorCodeDecodeFailed       = "decode_failed"
	ErrorCodeInvalidKeySpec     = "invalid_key_spec"
	ErrorCodeDuplicateKey       = "duplicate_key"
	ErrorCodeKeyNotFound        = "key_not_found"
	ErrorCodeAmbiguousKey       = "ambiguous_key"
)

var sentinels = map[string]error{
	ErrorCodeMalformedDocument:  ErrMalformedDocument,
	ErrorCodeMissingField:       ErrMissingField,
	ErrorCodeUnsupportedKeyType: ErrUnsupportedKeyType,
	ErrorCodeDecodeFailed:       ErrDecode,
	ErrorCodeInvalidKeySpec:     ErrInvalidKeySpec,
	ErrorCodeDuplicateKey:       ErrDuplicateKey,
	ErrorCodeKeyNotFound:        ErrKeyNotFound,
	ErrorCodeAmbiguousKey:       ErrAmbiguousKey,
}

// Error describes a parse or lookup failure with enough context for logging
// and metrics. Key material is never included.
type Error struct {
	// Code is a machine-readable error code (e.g., "missing_field").
	Code string

	// Message is a human-readable error message.
	Message string

	// Index is the position of the offending entry in the "keys" array,
	// or -1 when the error is not tied to an entry.
	Index int

	// Field names the offending member, if any.
	Field string

	// Details contains the underlying error.
	Details error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Index >= 0 {
		msg = fmt.Sprintf("keys[%d]: %s", e.Index, msg)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %q)", msg, e.Field)
	}
	if e.Details != nil {
		return msg + ": " + e.Details.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Details
}

// Is matches the sentinel error for the code.
func (e *Error) Is(target error) bool {
	if e.Code == ErrorCodeAmbiguousKey && target == ErrKeyNotFound {
		return true
	}
	return sentinels[e.Code] == target
}

func newError(code string, index int, field, message string, details error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Index:   index,
		Field:   field,
		Details: details,
	}
}

// entryError converts a builder failure for entry index into an *Error.
func entryError(index int, err error) *Error {
	var field string
	var pe *pubkey.ParamError
	if errors.As(err, &pe) {
		field = pe.Param
	}

	switch {
	case errors.Is(err, pubkey.ErrUnsupportedKeyType):
		return newError(ErrorCodeUnsupportedKeyType, index, "kty", "unsupported key type", err)
	case errors.Is(err, pubkey.ErrMissingParameter):
		return newError(ErrorCodeMissingField, index, field, "missing required field", err)
	case errors.Is(err, keymaterial.ErrDecode):
		return newError(ErrorCodeDecodeFailed, index, field, "could not decode key material", err)
	default:
		return newError(ErrorCodeInvalidKeySpec, index, field, "invalid key parameters", err)
	}
}

// Code returns the error code carried by err, or "" when err was not produced
// by this package.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
