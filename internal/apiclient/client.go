// Package apiclient is the typed HTTP client for the blog REST API.
//
// Every call returns a Response envelope whose Data field holds the decoded
// JSON payload. The client does no retrying, caching or timeouts; callers
// decide how to present failures.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Response wraps a decoded payload together with the raw HTTP response.
// The raw body has already been read and closed.
type Response[T any] struct {
	Data T
	Raw  *http.Response
}

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// Client talks to the REST API rooted at a base URL such as
// "http://localhost:8000/api".
type Client struct {
	baseURL    string
	httpClient *http.Client

	Posts   *Resource[models.Post, models.PostFields]
	Authors *Resource[models.Author, models.AuthorFields]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New returns a Client for baseURL. A trailing slash on baseURL is ignored.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Posts = &Resource[models.Post, models.PostFields]{client: c, name: "posts"}
	c.Authors = &Resource[models.Author, models.AuthorFields]{client: c, name: "authors"}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Resource is a REST collection with the standard five operations.
type Resource[T any, F any] struct {
	client *Client
	name   string
}

func (r *Resource[T, F]) collectionURL() string {
	return r.client.baseURL + "/" + r.name + "/"
}

func (r *Resource[T, F]) itemURL(id uint) string {
	return r.client.baseURL + "/" + r.name + "/" + strconv.FormatUint(uint64(id), 10) + "/"
}

// List fetches every item of the collection.
func (r *Resource[T, F]) List(ctx context.Context) (*Response[[]T], error) {
	var out []T
	raw, err := r.client.do(ctx, r.name, "list", http.MethodGet, r.collectionURL(), nil, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return &Response[[]T]{Data: out, Raw: raw}, nil
}

// Get fetches a single item.
func (r *Resource[T, F]) Get(ctx context.Context, id uint) (*Response[T], error) {
	var out T
	raw, err := r.client.do(ctx, r.name, "get", http.MethodGet, r.itemURL(id), nil, &out)
	if err != nil {
		return nil, err
	}
	return &Response[T]{Data: out, Raw: raw}, nil
}

// Create posts the full field set and returns the created item.
func (r *Resource[T, F]) Create(ctx context.Context, fields F) (*Response[T], error) {
	var out T
	raw, err := r.client.do(ctx, r.name, "create", http.MethodPost, r.collectionURL(), fields, &out)
	if err != nil {
		return nil, err
	}
	return &Response[T]{Data: out, Raw: raw}, nil
}

// Update replaces every field of an item.
func (r *Resource[T, F]) Update(ctx context.Context, id uint, fields F) (*Response[T], error) {
	var out T
	raw, err := r.client.do(ctx, r.name, "update", http.MethodPut, r.itemURL(id), fields, &out)
	if err != nil {
		return nil, err
	}
	return &Response[T]{Data: out, Raw: raw}, nil
}

// Delete removes an item. The API answers with an empty body.
func (r *Resource[T, F]) Delete(ctx context.Context, id uint) (*Response[struct{}], error) {
	raw, err := r.client.do(ctx, r.name, "delete", http.MethodDelete, r.itemURL(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return &Response[struct{}]{Raw: raw}, nil
}

func (c *Client) do(ctx context.Context, resource, operation, method, url string, body, out interface{}) (_ *http.Response, err error) {
	start := time.Now()
	defer func() { observability.ObserveAPICall(resource, operation, start, err) }()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, url, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, url, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cid := observability.ExtractCorrelationID(ctx); cid != "" {
		req.Header.Set("X-Correlation-ID", cid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, fmt.Errorf("read %s %s: %w", method, url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, &HTTPError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return resp, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp, fmt.Errorf("decode %s %s: %w", method, url, err)
	}
	return resp, nil
}
