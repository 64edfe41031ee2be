package jwkset

import (
	"crypto"
	"fmt"

	"github.com/tokenkit/jwkset/pubkey"
)

// DefaultKeyID is assigned to an entry that has no "kid". Some providers omit
// the id when they publish a single key.
const DefaultKeyID = "default-kid"

// KeyType is the "kty" of a key.
type KeyType = pubkey.KeyType

// Supported key types.
const (
	RSA = pubkey.RSA
	EC  = pubkey.EC
	OKP = pubkey.OKP
)

// Key is a single parsed JSON Web Key. It is immutable.
type Key struct {
	kty       KeyType
	kid       string
	defaulted bool
	alg       string
	hasAlg    bool
	use       string
	hasUse    bool
	pub       crypto.PublicKey
}

// KeyOption sets an optional attribute of a Key built with NewKey.
type KeyOption func(*Key)

// WithAlgorithm sets the "alg" of the key.
func WithAlgorithm(alg string) KeyOption {
	return func(k *Key) {
		k.alg, k.hasAlg = alg, alg != ""
	}
}

// WithUse sets the "use" of the key.
func WithUse(use string) KeyOption {
	return func(k *Key) {
		k.use, k.hasUse = use, use != ""
	}
}

// NewKey builds a Key from an already constructed public key. An empty kid
// is replaced by DefaultKeyID. The public key must belong to the family of kty.
func NewKey(kty KeyType, kid string, pub crypto.PublicKey, opts ...KeyOption) (*Key, error) {
	if kty == "" {
		return nil, newError(ErrorCodeMissingField, -1, "kty", "key type is required", nil)
	}
	if pub == nil {
		return nil, newError(ErrorCodeInvalidKeySpec, -1, "", "public key is required", nil)
	}
	if !pubkey.Matches(kty, pub) {
		return nil, newError(ErrorCodeInvalidKeySpec, -1, "kty",
			fmt.Sprintf("public key of type %T does not belong to key type %q", pub, string(kty)), nil)
	}

	k := &Key{kty: kty, kid: kid, pub: pub}
	if kid == "" {
		k.kid, k.defaulted = DefaultKeyID, true
	}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Type returns the key type.
func (k *Key) Type() KeyType { return k.kty }

// ID returns the key id, which is DefaultKeyID when the entry had none.
func (k *Key) ID() string { return k.kid }

// HasDefaultID reports whether ID was synthesized because the entry had no "kid".
func (k *Key) HasDefaultID() bool { return k.defaulted }

// Algorithm returns the declared "alg" and whether it was present.
func (k *Key) Algorithm() (string, bool) { return k.alg, k.hasAlg }

// Use returns the declared "use" and whether it was present.
func (k *Key) Use() (string, bool) { return k.use, k.hasUse }

// PublicKey returns the public key: *rsa.PublicKey, *ecdsa.PublicKey or
// ed25519.PublicKey for the built-in key types.
func (k *Key) PublicKey() crypto.PublicKey { return k.pub }

// String describes the key without its material.
func (k *Key) String() string {
	if k.hasAlg {
		return fmt.Sprintf("%s/%s (%s)", k.kty, k.kid, k.alg)
	}
	return fmt.Sprintf("%s/%s", k.kty, k.kid)
}
