package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/stock/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"amount":3}`))
	})
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"name":"Tênis de Caminhada","price":179.9,"image_url":"https://img/1.jpg"}`))
	})
	mux.HandleFunc("/stock/3", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/stock/4", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPCatalog_GetStock(t *testing.T) {
	srv := newCatalogServer(t)
	c := NewHTTPCatalog(srv.URL+"/", time.Second)

	s, err := c.GetStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)
	assert.Equal(t, int64(3), s.Amount)
}

func TestHTTPCatalog_GetProduct(t *testing.T) {
	srv := newCatalogServer(t)
	c := NewHTTPCatalog(srv.URL, time.Second)

	p, err := c.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Tênis de Caminhada", p.Name)
	assert.True(t, decimal.RequireFromString("179.9").Equal(p.Price))
	assert.Equal(t, "https://img/1.jpg", p.ImageURL)
	assert.Equal(t, int64(0), p.Amount)
}

func TestHTTPCatalog_NotFoundUnwrapsToErrNotFound(t *testing.T) {
	srv := newCatalogServer(t)
	c := NewHTTPCatalog(srv.URL, time.Second)

	_, err := c.GetProduct(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repo.ErrNotFound))

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Status)
}

func TestHTTPCatalog_ServerErrorIsNotNotFound(t *testing.T) {
	srv := newCatalogServer(t)
	c := NewHTTPCatalog(srv.URL, time.Second)

	_, err := c.GetStock(context.Background(), 3)
	require.Error(t, err)
	assert.False(t, errors.Is(err, repo.ErrNotFound))
}

func TestHTTPCatalog_BadJSON(t *testing.T) {
	srv := newCatalogServer(t)
	c := NewHTTPCatalog(srv.URL, time.Second)

	_, err := c.GetStock(context.Background(), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestHTTPCatalog_Unreachable(t *testing.T) {
	srv := newCatalogServer(t)
	url := srv.URL
	srv.Close()

	c := NewHTTPCatalog(url, 200*time.Millisecond)
	_, err := c.GetStock(context.Background(), 1)
	require.Error(t, err)
}

func TestHTTPCatalog_SpanNameOmitsProductID(t *testing.T) {
	srv := newCatalogServer(t)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	c := NewHTTPCatalog(srv.URL, time.Second, WithTracerProvider(tp))
	_, err := c.GetStock(context.Background(), 1)
	require.NoError(t, err)
	_, err = c.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	_, _ = c.GetStock(context.Background(), 3)

	spans := sr.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "catalog GET /stock/{id}", spans[0].Name())
	assert.Equal(t, "catalog GET /products/{id}", spans[1].Name())
	assert.Equal(t, spans[0].Name(), spans[2].Name())

	assert.Contains(t, spans[0].Attributes(), attribute.Int64("product.id", 1))
	assert.Contains(t, spans[2].Attributes(), attribute.Int64("product.id", 3))
}
