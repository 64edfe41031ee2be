package keymaterial

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrDecode is returned when a field is not valid base64url.
var ErrDecode = errors.New("invalid base64url key material")

// Decode decodes an unpadded base64url string. Trailing "=" padding is
// tolerated since some providers emit it. Non-zero trailing bits are rejected,
// so every accepted value has exactly one encoding.
func Decode(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	if s == "" {
		return nil, fmt.Errorf("%w: empty value", ErrDecode)
	}

	// Strict decoding still skips CR and LF.
	if strings.ContainsAny(s, "\r\n") {
		return nil, fmt.Errorf("%w: unexpected line break", ErrDecode)
	}

	b, err := base64.RawURLEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return b, nil
}

// DecodeUint decodes a big-endian unsigned integer.
func DecodeUint(s string) (*big.Int, error) {
	b, err := Decode(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// Encode is the inverse of Decode.
func Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// EncodeUint encodes v in its minimal big-endian form.
func EncodeUint(v *big.Int) string {
	return Encode(v.Bytes())
}
