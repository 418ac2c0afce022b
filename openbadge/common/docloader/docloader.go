// Package docloader provides a caching HTTP loader for the remote
// documents the SDK consumes: JSON-LD contexts during URDNA2015
// canonicalization and credential schemas during deep schema validation.
package docloader

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/piprate/json-gold/ld"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 10 * time.Second

// maxDocumentSize bounds a fetched document to keep a misbehaving host
// from exhausting memory.
const maxDocumentSize = 10 << 20

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithLogger enables fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// Loader fetches and caches remote JSON documents. Fetches for the same
// URL are collapsed so concurrent canonicalizations of credentials sharing
// a context hit the network once. Loader implements ld.DocumentLoader.
type Loader struct {
	client *http.Client
	logger *slog.Logger

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string][]byte
}

// New returns a Loader backed by an otel-instrumented HTTP client.
func New(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		cache:  make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadDocument implements ld.DocumentLoader for JSON-LD context
// resolution.
func (l *Loader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	body, err := l.fetch(u)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}
	var document interface{}
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, fmt.Errorf("parse document %s: %w", u, err))
	}
	return &ld.RemoteDocument{DocumentURL: u, Document: document}, nil
}

// LoadSchema fetches a credential schema body. Satisfies
// vc.SchemaResolver.
func (l *Loader) LoadSchema(u string) (json.RawMessage, error) {
	body, err := l.fetch(u)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("schema %s is not valid JSON", u)
	}
	return json.RawMessage(body), nil
}

func (l *Loader) fetch(u string) ([]byte, error) {
	l.mu.RLock()
	cached, ok := l.cache[u]
	l.mu.RUnlock()
	if ok {
		return cached, nil
	}

	body, err, _ := l.group.Do(u, func() (interface{}, error) {
		resp, err := l.client.Get(u)
		if err != nil {
			l.logger.Warn("document fetch failed", "url", u, "error", err)
			return nil, fmt.Errorf("fetch %s: %w", u, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			l.logger.Warn("document fetch failed", "url", u, "status", resp.Status)
			return nil, fmt.Errorf("fetch %s: unexpected status %s", u, resp.Status)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", u, err)
		}

		l.mu.Lock()
		l.cache[u] = data
		l.mu.Unlock()

		l.logger.Debug("document cached", "url", u, "bytes", len(data))
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}
