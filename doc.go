/*
Package jwkset parses JSON Web Key Sets (RFC 7517) into immutable, indexed sets
of public keys for token signature verification.

The package does not fetch or cache documents. A caller that downloads a JWKS
document hands it to a Factory, keeps the returned *Set, and replaces the
reference when it refreshes. A Set never changes after construction and can be
read from any number of goroutines.

# Quick Start

	set, err := jwkset.ParseJSON(doc)
	if err != nil {
	    // Treat as an authentication failure.
	    return err
	}

	key, err := set.Key(jwkset.RSA, kidFromTokenHeader)
	if err != nil {
	    return err
	}
	rsaKey := key.PublicKey().(*rsa.PublicKey)

# Parsing

Every entry of the "keys" array must declare a "kty". The "kid", "alg" and
"use" members are optional. The type specific members are handed to the
builder registered for the key type (see package pubkey): RSA, EC and OKP are
supported out of the box.

Parsing is all or nothing. A single entry that is malformed, of an unsupported
type, or carries invalid key material fails the whole document, so a caller
never validates tokens against a silently shortened key set.

# Keys Without an Id

Some identity providers omit "kid" when they publish a single key. Such an
entry gets DefaultKeyID as its id. This applies per entry: a second entry of
the same type without an id fails the document with ErrDuplicateKey rather
than replacing the first.

# Lookup

Set.Key looks keys up by type and id. An empty id means the token carried
none, and resolves to the key of that type that was published without an id.
When no such key exists the lookup fails; it never picks one of several
candidates:

	key, err := set.Key(jwkset.RSA, "")
	switch {
	case errors.Is(err, jwkset.ErrAmbiguousKey):
	    // Keys exist, but all carry ids.
	case errors.Is(err, jwkset.ErrKeyNotFound):
	    // No key of that type.
	}

# Errors

All errors are *Error values carrying a machine-readable Code, the index of
the offending entry and the offending field. They match the sentinel errors
(ErrMalformedDocument, ErrMissingField, ErrUnsupportedKeyType, ErrDecode,
ErrInvalidKeySpec, ErrDuplicateKey, ErrKeyNotFound, ErrAmbiguousKey) with
errors.Is.

# Configuration

	f, err := jwkset.NewFactory(
	    jwkset.WithLogger(jwkset.NewLogrusLogger(logrus.StandardLogger())),
	    jwkset.WithMetrics(jwkset.NewPrometheusMetrics(prometheus.DefaultRegisterer)),
	    jwkset.WithTracer(jwkset.NewOpenTelemetryTracer(otel.Tracer("jwkset"))),
	    jwkset.WithMaxDocumentSize(64*1024),
	)

# Interoperability

Set.JWX and Set.JOSE export a parsed set to github.com/lestrrat-go/jwx/v3 and
github.com/go-jose/go-jose/v4 respectively, and Set.KeyFunc adapts a lookup to
the keyFunc signature used by token validators.
*/
package jwkset
