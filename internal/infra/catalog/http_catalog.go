// Package catalog はカートから見たカタログ（商品と在庫の取得）の実装。
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "storefront/internal/infra/catalog"

// StatusError はカタログが 2xx 以外を返したとき。404 は repository.ErrNotFound として扱える。
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s: status %d", e.URL, e.Status)
}

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return repo.ErrNotFound
	}
	return nil
}

// GET /stock/:id と GET /products/:id を叩くクライアント
type HTTPCatalog struct {
	baseURL string
	client  *http.Client
	tracer  trace.Tracer
}

type HTTPCatalogOption func(*HTTPCatalog)

// 既定はグローバルの TracerProvider
func WithTracerProvider(tp trace.TracerProvider) HTTPCatalogOption {
	return func(c *HTTPCatalog) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

func NewHTTPCatalog(baseURL string, timeout time.Duration, opts ...HTTPCatalogOption) *HTTPCatalog {
	c := &HTTPCatalog{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPCatalog) GetStock(ctx context.Context, productID int64) (model.StockEntry, error) {
	var s model.StockEntry
	if err := c.getJSON(ctx, "stock", productID, &s); err != nil {
		return model.StockEntry{}, err
	}
	return s, nil
}

func (c *HTTPCatalog) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	var p model.Product
	if err := c.getJSON(ctx, "products", productID, &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// span 名は id を含めない（/stock/{id} のようにまとめる）
func (c *HTTPCatalog) getJSON(ctx context.Context, resource string, productID int64, out any) error {
	url := c.baseURL + "/" + resource + "/" + strconv.FormatInt(productID, 10)

	ctx, span := c.tracer.Start(ctx, "catalog GET /"+resource+"/{id}",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.url", url),
			attribute.Int64("product.id", productID),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		span.RecordError(err)
		return err
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return fmt.Errorf("catalog %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 本文は読み捨ててコネクションを再利用する
		_, _ = io.Copy(io.Discard, resp.Body)
		span.SetStatus(codes.Error, resp.Status)
		return &StatusError{URL: url, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("catalog %s: decode: %w", url, err)
	}
	return nil
}
