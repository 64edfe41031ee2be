package jwkset

import (
	"errors"

	"github.com/tokenkit/jwkset/pubkey"
)

// Option configures a Factory.
// Returns error for validation failures.
type Option func(*Factory) error

// WithRegistry sets the registry used to build public keys.
// If not specified, pubkey.NewRegistry() is used, which supports RSA, EC and OKP.
func WithRegistry(r *pubkey.Registry) Option {
	return func(f *Factory) error {
		if r == nil {
			return errors.New("registry cannot be nil")
		}
		f.registry = r
		return nil
	}
}

// WithLogger sets the logger. Defaults to NopLogger.
func WithLogger(l Logger) Option {
	return func(f *Factory) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		f.logger = l
		return nil
	}
}

// WithMetrics sets the metrics sink. Defaults to NoopMetrics.
func WithMetrics(m Metrics) Option {
	return func(f *Factory) error {
		if m == nil {
			return errors.New("metrics cannot be nil")
		}
		f.metrics = m
		return nil
	}
}

// WithTracer sets the tracer. Defaults to NoopTracer.
func WithTracer(t Tracer) Option {
	return func(f *Factory) error {
		if t == nil {
			return errors.New("tracer cannot be nil")
		}
		f.tracer = t
		return nil
	}
}

// WithMaxDocumentSize sets the largest document, in bytes, the factory will
// parse. Defaults to DefaultMaxDocumentSize.
func WithMaxDocumentSize(size int64) Option {
	return func(f *Factory) error {
		if size <= 0 {
			return errors.New("max document size must be positive")
		}
		f.maxDocumentSize = size
		return nil
	}
}

// WithMaxKeys sets the largest number of entries a document may hold.
// Defaults to DefaultMaxKeys. Set to 0 for unlimited.
func WithMaxKeys(n int) Option {
	return func(f *Factory) error {
		if n < 0 {
			return errors.New("max keys cannot be negative")
		}
		f.maxKeys = n
		return nil
	}
}
