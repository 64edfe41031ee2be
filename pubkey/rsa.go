package pubkey

import (
	"crypto"
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/tokenkit/jwkset/internal/keymaterial"
)

// MinRSAModulusBits is the smallest modulus accepted for an RSA key.
const MinRSAModulusBits = 512

// maxRSAExponentBits keeps the exponent within what crypto/rsa accepts.
const maxRSAExponentBits = 31

func buildRSA(p Params) (crypto.PublicKey, error) {
	n, err := p.integer("n")
	if err != nil {
		return nil, err
	}
	e, err := p.integer("e")
	if err != nil {
		return nil, err
	}

	switch {
	case n.Sign() <= 0:
		return nil, invalidParam("n", "modulus must be positive")
	case n.BitLen() < MinRSAModulusBits:
		return nil, invalidParam("n", fmt.Sprintf("modulus of %d bits is shorter than %d", n.BitLen(), MinRSAModulusBits))
	case n.Bit(0) == 0:
		return nil, invalidParam("n", "modulus must be odd")
	}

	switch {
	case e.BitLen() > maxRSAExponentBits:
		return nil, invalidParam("e", "exponent too large")
	case e.Int64() < 3 || e.Bit(0) == 0:
		return nil, invalidParam("e", "exponent must be an odd integer greater than 1")
	}

	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

func (p Params) integer(name string) (*big.Int, error) {
	s, err := p.String(name)
	if err != nil {
		return nil, err
	}
	v, err := keymaterial.DecodeUint(s)
	if err != nil {
		return nil, &ParamError{Param: name, Err: err}
	}
	return v, nil
}

func invalidParam(name, reason string) error {
	return &ParamError{Param: name, Err: fmt.Errorf("%w: %s", ErrInvalidKeySpec, reason)}
}
