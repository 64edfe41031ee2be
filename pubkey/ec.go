package pubkey

import (
	"crypto"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/tokenkit/jwkset/internal/keymaterial"
)

type curve struct {
	ecdsa elliptic.Curve
	ecdh  ecdh.Curve
}

var curves = map[string]curve{
	"P-256": {ecdsa: elliptic.P256(), ecdh: ecdh.P256()},
	"P-384": {ecdsa: elliptic.P384(), ecdh: ecdh.P384()},
	"P-521": {ecdsa: elliptic.P521(), ecdh: ecdh.P521()},
}

func buildEC(p Params) (crypto.PublicKey, error) {
	crv, err := p.String("crv")
	if err != nil {
		return nil, err
	}
	c, ok := curves[crv]
	if !ok {
		return nil, invalidParam("crv", fmt.Sprintf("unsupported curve %q", crv))
	}

	size := (c.ecdsa.Params().BitSize + 7) / 8
	x, err := p.fixed("x", size)
	if err != nil {
		return nil, err
	}
	y, err := p.fixed("y", size)
	if err != nil {
		return nil, err
	}

	// Uncompressed SEC 1 encoding; ecdh rejects points that are not on the curve.
	point := make([]byte, 0, 1+2*size)
	point = append(point, 4)
	point = append(point, x...)
	point = append(point, y...)
	if _, err := c.ecdh.NewPublicKey(point); err != nil {
		return nil, invalidParam("x", "point is not on curve "+crv)
	}

	return &ecdsa.PublicKey{
		Curve: c.ecdsa,
		X:     new(big.Int).SetBytes(x),
		Y:     new(big.Int).SetBytes(y),
	}, nil
}

func buildOKP(p Params) (crypto.PublicKey, error) {
	crv, err := p.String("crv")
	if err != nil {
		return nil, err
	}
	if crv != "Ed25519" {
		return nil, invalidParam("crv", fmt.Sprintf("unsupported curve %q", crv))
	}

	x, err := p.fixed("x", ed25519.PublicKeySize)
	if err != nil {
		return nil, err
	}
	return ed25519.PublicKey(x), nil
}

// fixed decodes a parameter that must be exactly size bytes long.
func (p Params) fixed(name string, size int) ([]byte, error) {
	s, err := p.String(name)
	if err != nil {
		return nil, err
	}
	b, err := keymaterial.Decode(s)
	if err != nil {
		return nil, &ParamError{Param: name, Err: err}
	}
	if len(b) != size {
		return nil, invalidParam(name, fmt.Sprintf("expected %d bytes, got %d", size, len(b)))
	}
	return b, nil
}
