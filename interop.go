package jwkset

import (
	"fmt"

	"github.com/go-jose/go-jose/v4"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// JWX exports the set as a jwx key set. Keys published without an id are
// exported without one, so they only match tokens that carry no "kid" either.
func (s *Set) JWX() (jwk.Set, error) {
	out := jwk.NewSet()
	for _, k := range s.keys {
		key, err := jwk.Import(k.pub)
		if err != nil {
			return nil, fmt.Errorf("could not import key %s: %w", k, err)
		}

		if !k.defaulted {
			if err := key.Set(jwk.KeyIDKey, k.kid); err != nil {
				return nil, fmt.Errorf("could not set key id on %s: %w", k, err)
			}
		}
		if k.hasAlg {
			alg, err := keyAlgorithm(k.alg)
			if err != nil {
				return nil, fmt.Errorf("could not export key %s: %w", k, err)
			}
			if err := key.Set(jwk.AlgorithmKey, alg); err != nil {
				return nil, fmt.Errorf("could not set algorithm on %s: %w", k, err)
			}
		}
		if k.hasUse {
			if err := key.Set(jwk.KeyUsageKey, jwk.KeyUsageType(k.use)); err != nil {
				return nil, fmt.Errorf("could not set usage on %s: %w", k, err)
			}
		}

		if err := out.AddKey(key); err != nil {
			return nil, fmt.Errorf("could not add key %s: %w", k, err)
		}
	}
	return out, nil
}

func keyAlgorithm(name string) (jwa.KeyAlgorithm, error) {
	if alg, ok := jwa.LookupSignatureAlgorithm(name); ok {
		return alg, nil
	}
	if alg, ok := jwa.LookupKeyEncryptionAlgorithm(name); ok {
		return alg, nil
	}
	return nil, fmt.Errorf("unknown algorithm %q", name)
}

// JOSE exports the set as a go-jose key set. As with JWX, keys published
// without an id carry no "kid".
func (s *Set) JOSE() jose.JSONWebKeySet {
	out := jose.JSONWebKeySet{Keys: make([]jose.JSONWebKey, 0, len(s.keys))}
	for _, k := range s.keys {
		key := jose.JSONWebKey{
			Key:       k.pub,
			Algorithm: k.alg,
			Use:       k.use,
		}
		if !k.defaulted {
			key.KeyID = k.kid
		}
		out.Keys = append(out.Keys, key)
	}
	return out
}
