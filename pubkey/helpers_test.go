package pubkey

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	rsaKeyOnce sync.Once
	rsaKey     *rsa.PrivateKey
	rsaKeyErr  error
)

func testRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	rsaKeyOnce.Do(func() {
		rsaKey, rsaKeyErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	require.NoError(t, rsaKeyErr)
	return rsaKey
}

func b64(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func b64Int(v *big.Int) string {
	return b64(v.Bytes())
}

// params builds Params from string members.
func params(t *testing.T, kv ...string) Params {
	t.Helper()
	require.Equal(t, 0, len(kv)%2, "params needs key/value pairs")

	p := Params{}
	for i := 0; i < len(kv); i += 2 {
		raw, err := json.Marshal(kv[i+1])
		require.NoError(t, err)
		p[kv[i]] = raw
	}
	return p
}
