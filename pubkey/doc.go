/*
Package pubkey builds Go public keys from the type specific parameters of a
JSON Web Key.

Builders are selected by the declared key type ("kty") through a Registry. The
default registry understands RSA (n, e), EC (crv, x, y on P-256, P-384 and
P-521) and OKP (crv Ed25519, x). Additional key types can be plugged in without
touching the callers:

	reg := pubkey.NewRegistry()
	err := reg.Register("oct", func(p pubkey.Params) (crypto.PublicKey, error) {
	    ...
	})

Every builder validates its parameters and either returns a complete key or an
error. Errors wrap one of ErrMissingParameter, ErrInvalidKeySpec or
ErrUnsupportedKeyType, or the decoding error of the key material, and
parameter level failures are reported as a *ParamError naming the field.
*/
package pubkey
