package jwkset

import (
	"context"
	"fmt"
)

type keyRef struct {
	kty KeyType
	kid string
}

// Set is an immutable, ordered collection of keys indexed by type and id.
// It is safe for concurrent use.
type Set struct {
	keys     []*Key
	index    map[keyRef]*Key
	defaults map[KeyType]*Key
	perType  map[KeyType]int
}

// NewSet builds a Set from keys. It fails with ErrDuplicateKey when two keys
// share the same type and id. A second key of the same type without an
// explicit id fails the same way, and that error also matches ErrDecode.
func NewSet(keys ...*Key) (*Set, error) {
	s := &Set{
		keys:     make([]*Key, 0, len(keys)),
		index:    make(map[keyRef]*Key, len(keys)),
		defaults: make(map[KeyType]*Key),
		perType:  make(map[KeyType]int),
	}

	for i, k := range keys {
		if k == nil {
			return nil, newError(ErrorCodeInvalidKeySpec, i, "", "nil key", nil)
		}
		ref := keyRef{kty: k.kty, kid: k.kid}
		if _, exists := s.index[ref]; exists {
			if k.defaulted {
				// The document cannot be read as a set: also matches ErrDecode.
				return nil, newError(ErrorCodeDuplicateKey, i, "kid",
					fmt.Sprintf("more than one %s key without an id", k.kty),
					fmt.Errorf("%w: ambiguous default id", ErrDecode))
			}
			return nil, newError(ErrorCodeDuplicateKey, i, "kid",
				fmt.Sprintf("key %s/%s already present", k.kty, k.kid), nil)
		}

		s.index[ref] = k
		if k.defaulted {
			s.defaults[k.kty] = k
		}
		s.perType[k.kty]++
		s.keys = append(s.keys, k)
	}

	return s, nil
}

// IsEmpty reports whether the set holds no keys.
func (s *Set) IsEmpty() bool {
	return len(s.keys) == 0
}

// Len returns the number of keys.
func (s *Set) Len() int {
	return len(s.keys)
}

// Keys returns the keys in document order. The slice is a copy.
func (s *Set) Keys() []*Key {
	out := make([]*Key, len(s.keys))
	copy(out, s.keys)
	return out
}

// Key returns the key of type kty with id kid.
//
// An empty kid means the caller has no id. In that case the key of that type
// which was published without an id is returned. If there is none, the lookup
// fails with ErrAmbiguousKey when keys of that type exist, and ErrKeyNotFound
// otherwise. There is no first match fallback.
func (s *Set) Key(kty KeyType, kid string) (*Key, error) {
	if kid == "" {
		return s.KeyByType(kty)
	}
	if k, ok := s.index[keyRef{kty: kty, kid: kid}]; ok {
		return k, nil
	}
	return nil, newError(ErrorCodeKeyNotFound, -1, "",
		fmt.Sprintf("no %s key with id %q", kty, kid), nil)
}

// KeyByType returns the key of type kty that was published without an id.
func (s *Set) KeyByType(kty KeyType) (*Key, error) {
	if k, ok := s.defaults[kty]; ok {
		return k, nil
	}
	if n := s.perType[kty]; n > 0 {
		return nil, newError(ErrorCodeAmbiguousKey, -1, "kid",
			fmt.Sprintf("%d %s keys carry explicit ids and none was requested", n, kty), nil)
	}
	return nil, newError(ErrorCodeKeyNotFound, -1, "", fmt.Sprintf("no %s key", kty), nil)
}

// ContainsKey reports whether Key(kty, kid) would succeed.
func (s *Set) ContainsKey(kty KeyType, kid string) bool {
	_, err := s.Key(kty, kid)
	return err == nil
}

// ContainsKeyByType reports whether KeyByType(kty) would succeed.
func (s *Set) ContainsKeyByType(kty KeyType) bool {
	_, ok := s.defaults[kty]
	return ok
}

// KeyFunc returns a function with the keyFunc signature token validators use.
// It resolves the public key of type kty and id kid on every call.
func (s *Set) KeyFunc(kty KeyType, kid string) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		k, err := s.Key(kty, kid)
		if err != nil {
			return nil, err
		}
		return k.PublicKey(), nil
	}
}
