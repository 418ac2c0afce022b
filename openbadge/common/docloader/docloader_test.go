package docloader

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ld.DocumentLoader = (*Loader)(nil)

func newTestServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/context.jsonld":
			w.Write([]byte(`{"@context": {"name": "https://schema.org/name"}}`))
		case "/schema.json":
			w.Write([]byte(`{"type": "object", "required": ["id"]}`))
		case "/broken.json":
			w.Write([]byte(`{not json`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLoadDocument(t *testing.T) {
	var hits atomic.Int64
	server := newTestServer(t, &hits)
	loader := New(WithHTTPClient(server.Client()))

	doc, err := loader.LoadDocument(server.URL + "/context.jsonld")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/context.jsonld", doc.DocumentURL)
	assert.NotNil(t, doc.Document)
}

func TestLoadDocumentCaches(t *testing.T) {
	var hits atomic.Int64
	server := newTestServer(t, &hits)
	loader := New(WithHTTPClient(server.Client()))

	for i := 0; i < 5; i++ {
		_, err := loader.LoadDocument(server.URL + "/context.jsonld")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), hits.Load(), "repeated loads must be served from cache")
}

func TestLoadDocumentConcurrent(t *testing.T) {
	var hits atomic.Int64
	server := newTestServer(t, &hits)
	loader := New(WithHTTPClient(server.Client()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := loader.LoadDocument(server.URL + "/context.jsonld")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), hits.Load(), "concurrent loads of one URL must collapse to a single fetch")
}

func TestLoadSchema(t *testing.T) {
	var hits atomic.Int64
	server := newTestServer(t, &hits)
	loader := New(WithHTTPClient(server.Client()))

	schema, err := loader.LoadSchema(server.URL + "/schema.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "object", "required": ["id"]}`, string(schema))
}

func TestLoadErrors(t *testing.T) {
	var hits atomic.Int64
	server := newTestServer(t, &hits)
	loader := New(WithHTTPClient(server.Client()))

	t.Run("not found", func(t *testing.T) {
		_, err := loader.LoadDocument(server.URL + "/missing.jsonld")
		assert.Error(t, err)
	})

	t.Run("invalid JSON document", func(t *testing.T) {
		_, err := loader.LoadDocument(server.URL + "/broken.json")
		assert.Error(t, err)
	})

	t.Run("invalid JSON schema", func(t *testing.T) {
		_, err := loader.LoadSchema(server.URL + "/broken.json")
		assert.Error(t, err)
	})
}
