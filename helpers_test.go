package jwkset

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	rsaKeysOnce sync.Once
	rsaKeys     [2]*rsa.PrivateKey
	rsaKeysErr  error
)

// testRSAKey returns one of two RSA keys generated once per test binary.
func testRSAKey(t *testing.T, i int) *rsa.PrivateKey {
	t.Helper()
	rsaKeysOnce.Do(func() {
		for j := range rsaKeys {
			if rsaKeys[j], rsaKeysErr = rsa.GenerateKey(rand.Reader, 2048); rsaKeysErr != nil {
				return
			}
		}
	})
	require.NoError(t, rsaKeysErr)
	return rsaKeys[i]
}

func b64(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// nonCanonical flips the lowest unused bit of the last character of an
// unpadded base64url string whose length is not a multiple of four.
func nonCanonical(s string) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	last := strings.IndexByte(alphabet, s[len(s)-1])
	return s[:len(s)-1] + string(alphabet[last|1])
}

type entry map[string]any

func rsaEntry(pub *rsa.PublicKey) entry {
	return entry{
		"kty": "RSA",
		"n":   b64(pub.N.Bytes()),
		"e":   "AQAB",
	}
}

func ecEntry(t *testing.T) (entry, *ecdsa.PublicKey) {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return entry{
		"kty": "EC",
		"crv": "P-256",
		"x":   b64(priv.X.FillBytes(make([]byte, 32))),
		"y":   b64(priv.Y.FillBytes(make([]byte, 32))),
	}, &priv.PublicKey
}

func okpEntry(t *testing.T) (entry, ed25519.PublicKey) {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return entry{"kty": "OKP", "crv": "Ed25519", "x": b64(pub)}, pub
}

func (e entry) with(kv ...any) entry {
	out := entry{}
	for k, v := range e {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1]
	}
	return out
}

func (e entry) without(names ...string) entry {
	out := e.with()
	for _, name := range names {
		delete(out, name)
	}
	return out
}

func document(t *testing.T, entries ...entry) string {
	t.Helper()
	if entries == nil {
		entries = []entry{}
	}
	doc, err := json.Marshal(map[string]any{"keys": entries})
	require.NoError(t, err)
	return string(doc)
}
