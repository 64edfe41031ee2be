package jwkset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tokenkit/jwkset/pubkey"
)

const (
	// DefaultMaxDocumentSize is 1MB, generous for JWKS (typically <10KB).
	DefaultMaxDocumentSize int64 = 1 << 20

	// DefaultMaxKeys bounds the number of entries in a document.
	DefaultMaxKeys = 100
)

// Factory parses JWKS documents into Sets. A Factory holds no mutable state
// and can be shared between goroutines.
type Factory struct {
	registry        *pubkey.Registry
	logger          Logger
	metrics         Metrics
	tracer          Tracer
	maxDocumentSize int64
	maxKeys         int
}

// NewFactory builds and returns a new *Factory.
//
// Example:
//
//	f, err := jwkset.NewFactory(
//	    jwkset.WithLogger(jwkset.NewZapLogger(zapLogger.Sugar())),
//	    jwkset.WithMetrics(jwkset.NewPrometheusMetrics(registry)),
//	)
func NewFactory(opts ...Option) (*Factory, error) {
	f := &Factory{
		registry:        pubkey.NewRegistry(),
		logger:          NopLogger{},
		metrics:         &NoopMetrics{},
		tracer:          &NoopTracer{},
		maxDocumentSize: DefaultMaxDocumentSize,
		maxKeys:         DefaultMaxKeys,
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return f, nil
}

// ParseJSON parses a JWKS document with a Factory configured by opts.
func ParseJSON(doc string, opts ...Option) (*Set, error) {
	f, err := NewFactory(opts...)
	if err != nil {
		return nil, err
	}
	return f.ParseString(doc)
}

// ParseString parses a JWKS document held in a string.
func (f *Factory) ParseString(doc string) (*Set, error) {
	return f.Parse([]byte(doc))
}

// ParseReader reads at most the configured maximum document size from r and
// parses it.
func (f *Factory) ParseReader(r io.Reader) (*Set, error) {
	doc, err := io.ReadAll(io.LimitReader(r, f.maxDocumentSize+1))
	if err != nil {
		return nil, newError(ErrorCodeMalformedDocument, -1, "", "could not read document", err)
	}
	return f.Parse(doc)
}

// Parse parses a JWKS document. Any invalid entry fails the whole document;
// a partial Set is never returned.
func (f *Factory) Parse(doc []byte) (set *Set, err error) {
	span := f.tracer.StartSpan("jwkset.Parse")
	defer func() {
		if err != nil {
			span.SetError(err)
			f.metrics.IncCounter(MetricParseTotal, map[string]string{"result": Code(err)})
			f.logger.Warnf("rejecting JWKS document (%s): %v", Code(err), err)
		} else {
			span.SetTag("keys", set.Len())
			f.record(set)
		}
		span.Finish()
	}()

	entries, err := f.entries(doc)
	if err != nil {
		return nil, err
	}

	keys := make([]*Key, 0, len(entries))
	for i, raw := range entries {
		k, err := f.parseKey(i, raw)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	return NewSet(keys...)
}

// entries returns the members of the top level "keys" array.
func (f *Factory) entries(doc []byte) ([]json.RawMessage, error) {
	if int64(len(doc)) > f.maxDocumentSize {
		return nil, newError(ErrorCodeMalformedDocument, -1, "",
			fmt.Sprintf("document exceeds %d bytes", f.maxDocumentSize), nil)
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	var top map[string]json.RawMessage
	if err := dec.Decode(&top); err != nil {
		return nil, newError(ErrorCodeMalformedDocument, -1, "", "document is not a JSON object", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newError(ErrorCodeMalformedDocument, -1, "", "unexpected data after document", nil)
	}

	raw, ok := top["keys"]
	if !ok {
		return nil, newError(ErrorCodeMalformedDocument, -1, "keys", "missing keys array", nil)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, newError(ErrorCodeMalformedDocument, -1, "keys", "keys is not an array", nil)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, newError(ErrorCodeMalformedDocument, -1, "keys", "keys is not an array", err)
	}
	if f.maxKeys > 0 && len(entries) > f.maxKeys {
		return nil, newError(ErrorCodeMalformedDocument, -1, "keys",
			fmt.Sprintf("document holds %d keys, more than %d", len(entries), f.maxKeys), nil)
	}

	return entries, nil
}

func (f *Factory) parseKey(i int, raw json.RawMessage) (*Key, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return nil, newError(ErrorCodeMalformedDocument, i, "", "entry is not an object", nil)
	}
	var params pubkey.Params
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, newError(ErrorCodeMalformedDocument, i, "", "entry is not an object", err)
	}

	kty, ok, err := optionalString(params, "kty")
	if err != nil {
		return nil, newError(ErrorCodeMalformedDocument, i, "kty", "kty is not a string", err)
	}
	if !ok {
		return nil, newError(ErrorCodeMissingField, i, "kty", "missing required field", nil)
	}

	k := &Key{kty: KeyType(kty)}
	if k.kid, _, err = optionalString(params, "kid"); err != nil {
		return nil, newError(ErrorCodeMalformedDocument, i, "kid", "kid is not a string", err)
	}
	if k.alg, k.hasAlg, err = optionalString(params, "alg"); err != nil {
		return nil, newError(ErrorCodeMalformedDocument, i, "alg", "alg is not a string", err)
	}
	if k.use, k.hasUse, err = optionalString(params, "use"); err != nil {
		return nil, newError(ErrorCodeMalformedDocument, i, "use", "use is not a string", err)
	}
	if k.kid == "" {
		f.logger.Debugf("keys[%d]: no kid on %s key, using %q", i, kty, DefaultKeyID)
		k.kid, k.defaulted = DefaultKeyID, true
	}

	pub, err := f.registry.Build(k.kty, params)
	if err != nil {
		return nil, entryError(i, err)
	}
	k.pub = pub

	return k, nil
}

// optionalString returns the named member. Absent, null and empty members
// report false.
func optionalString(p pubkey.Params, name string) (string, bool, error) {
	raw, ok := p[name]
	if !ok {
		return "", false, nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, err
	}
	if s == nil || *s == "" {
		return "", false, nil
	}
	return *s, true, nil
}

func (f *Factory) record(set *Set) {
	f.metrics.IncCounter(MetricParseTotal, map[string]string{"result": "ok"})
	f.metrics.ObserveHistogram(MetricParseKeys, float64(set.Len()), map[string]string{})
	// Every registered type is reported so counts from an earlier document do not linger.
	for _, kty := range f.registry.Types() {
		f.metrics.SetGauge(MetricKeys, float64(set.perType[kty]), map[string]string{"kty": kty.String()})
	}
	f.logger.Debugf("parsed JWKS document with %d keys", set.Len())
}
