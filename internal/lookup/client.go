// Package lookup talks to the price API that resolves a barcode to a
// store's product name, price and image.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Rorical/MiLista/internal/barcode"
	"github.com/Rorical/MiLista/internal/cart"
	"github.com/Rorical/MiLista/internal/models"
)

// ErrLookupFailed is wrapped by every LookupError.
var ErrLookupFailed = errors.New("lookup failed")

// LookupError reports why a code could not be resolved.
type LookupError struct {
	Code   string
	Store  string
	Status int // HTTP status, 0 when no response was received
	Err    error
}

func (e *LookupError) Error() string {
	target := e.Code
	if e.Store != "" {
		target = e.Store + "/" + e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("lookup %s: status %d", target, e.Status)
	}
	return fmt.Sprintf("lookup %s: %v", target, e.Err)
}

func (e *LookupError) Unwrap() []error {
	return []error{ErrLookupFailed, e.Err}
}

// wireProduct is the per-store object returned by the API.
type wireProduct struct {
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
	Imagen string          `json:"imagen"`
}

func (w wireProduct) product() models.Product {
	return models.Product{
		Name:  w.Nombre,
		Price: w.Precio,
		Image: cart.CleanImage(w.Imagen),
	}
}

// Client is safe for concurrent use.
type Client struct {
	baseURL     string
	http        *http.Client
	logger      *zap.Logger
	userAgent   string
	concurrency int
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithConcurrency bounds the fan-out of LookupMany and CompareMany.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: 15 * time.Second},
		logger:      zap.NewNop(),
		userAgent:   "milista/1.0",
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Lookup resolves code at one store: GET {base}/api/{store}/{code}. The body
// is an object keyed by store id; a missing key counts as a failure.
func (c *Client) Lookup(ctx context.Context, code barcode.Code, storeID string) (models.Product, error) {
	endpoint := fmt.Sprintf("%s/api/%s/%s", c.baseURL, url.PathEscape(storeID), url.PathEscape(code.String()))

	var body map[string]json.RawMessage
	if err := c.getJSON(ctx, endpoint, code.String(), storeID, &body); err != nil {
		return models.Product{}, err
	}

	raw, ok := body[storeID]
	if !ok || string(raw) == "null" {
		return models.Product{}, &LookupError{Code: code.String(), Store: storeID, Err: errors.New("store missing from response")}
	}
	var wp wireProduct
	if err := json.Unmarshal(raw, &wp); err != nil {
		return models.Product{}, &LookupError{Code: code.String(), Store: storeID, Err: fmt.Errorf("decode product: %w", err)}
	}

	c.logger.Debug("lookup ok",
		zap.String("store", storeID),
		zap.String("code", code.String()),
		zap.String("price", wp.Precio.String()))
	return wp.product(), nil
}

// LookupAll resolves code at every store at once: GET {base}/api/product/{code}.
// Stores without data are absent from the result. Entries that fail to decode
// are skipped.
func (c *Client) LookupAll(ctx context.Context, code barcode.Code) (map[string]models.Product, error) {
	endpoint := fmt.Sprintf("%s/api/product/%s", c.baseURL, url.PathEscape(code.String()))

	var body map[string]json.RawMessage
	if err := c.getJSON(ctx, endpoint, code.String(), "", &body); err != nil {
		return nil, err
	}

	out := make(map[string]models.Product, len(body))
	for storeID, raw := range body {
		if string(raw) == "null" {
			continue
		}
		var wp wireProduct
		if err := json.Unmarshal(raw, &wp); err != nil {
			c.logger.Debug("skipping undecodable store entry",
				zap.String("store", storeID),
				zap.String("code", code.String()),
				zap.Error(err))
			continue
		}
		out[storeID] = wp.product()
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, code, store string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &LookupError{Code: code, Store: store, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &LookupError{Code: code, Store: store, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &LookupError{Code: code, Store: store, Status: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &LookupError{Code: code, Store: store, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
