package pubkey

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// KeyType is the "kty" of a JSON Web Key.
type KeyType string

// Key types understood by the default registry.
const (
	RSA = KeyType("RSA")
	EC  = KeyType("EC")
	OKP = KeyType("OKP")
)

// String returns the "kty" value.
func (t KeyType) String() string {
	return string(t)
}

var (
	// ErrUnsupportedKeyType is returned when no builder is registered for a key type.
	ErrUnsupportedKeyType = errors.New("unsupported key type")

	// ErrInvalidKeySpec is returned when decoded parameters do not form a valid key.
	ErrInvalidKeySpec = errors.New("invalid key specification")

	// ErrMissingParameter is returned when a required parameter is absent or empty.
	ErrMissingParameter = errors.New("missing key parameter")
)

// ParamError reports a failure tied to a single key parameter.
type ParamError struct {
	Param string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %q: %v", e.Param, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// Params holds the raw members of a single JSON Web Key entry.
type Params map[string]json.RawMessage

// String returns the named member as a string. Absent, null and empty members
// are reported as missing.
func (p Params) String(name string) (string, error) {
	raw, ok := p[name]
	if !ok {
		return "", &ParamError{Param: name, Err: ErrMissingParameter}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &ParamError{Param: name, Err: fmt.Errorf("%w: not a string", ErrInvalidKeySpec)}
	}
	if s == "" {
		return "", &ParamError{Param: name, Err: ErrMissingParameter}
	}
	return s, nil
}

// BuildFunc constructs a public key from the parameters of one entry.
type BuildFunc func(Params) (crypto.PublicKey, error)

// Registry maps key types to their builders. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	builders map[KeyType]BuildFunc
}

// NewRegistry returns a registry with the RSA, EC and OKP builders registered.
func NewRegistry() *Registry {
	return &Registry{
		builders: map[KeyType]BuildFunc{
			RSA: buildRSA,
			EC:  buildEC,
			OKP: buildOKP,
		},
	}
}

// Register adds or replaces the builder for kty.
func (r *Registry) Register(kty KeyType, fn BuildFunc) error {
	if kty == "" {
		return errors.New("key type cannot be empty")
	}
	if fn == nil {
		return errors.New("build function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[kty] = fn
	return nil
}

// Supports reports whether a builder is registered for kty.
func (r *Registry) Supports(kty KeyType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[kty]
	return ok
}

// Types returns the registered key types in lexical order.
func (r *Registry) Types() []KeyType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]KeyType, 0, len(r.builders))
	for kty := range r.builders {
		types = append(types, kty)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Build constructs the public key for kty. Unsupported types fail before any
// parameter is looked at.
func (r *Registry) Build(kty KeyType, params Params) (crypto.PublicKey, error) {
	r.mu.RLock()
	fn, ok := r.builders[kty]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKeyType, string(kty))
	}

	pub, err := fn(params)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		return nil, fmt.Errorf("%w: builder for %q returned no key", ErrInvalidKeySpec, string(kty))
	}
	if !Matches(kty, pub) {
		return nil, fmt.Errorf("%w: builder for %q returned a %T", ErrInvalidKeySpec, string(kty), pub)
	}
	return pub, nil
}

// Family reports the key type a constructed public key belongs to, or "" when
// the key is of an unknown kind.
func Family(pub crypto.PublicKey) KeyType {
	switch pub.(type) {
	case *rsa.PublicKey:
		return RSA
	case *ecdsa.PublicKey:
		return EC
	case ed25519.PublicKey:
		return OKP
	default:
		return ""
	}
}

// Matches reports whether pub can stand for a key of type kty. Keys of an
// unknown family are only accepted for types other than RSA, EC and OKP.
func Matches(kty KeyType, pub crypto.PublicKey) bool {
	family := Family(pub)
	if family == "" {
		return kty != RSA && kty != EC && kty != OKP
	}
	return family == kty
}
