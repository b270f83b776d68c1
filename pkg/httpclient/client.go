// Package httpclient fetches HTTP endpoints for use as poll
// probes.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"digital.vasic.expect/pkg/poll"
)

// ClientOption configures a Client via functional options.
type ClientOption func(*Client)

// Client wraps net/http.Client with optional bearer
// authentication and default headers.
type Client struct {
	token      string
	headers    map[string]string
	httpClient *http.Client
}

// NewClient creates a client with a 30 second request timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		headers: make(map[string]string),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithBearerToken sends an Authorization header on every request.
func WithBearerToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) { c.headers[key] = value }
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// Request describes one HTTP call.
type Request struct {
	Method  string            `yaml:"method" json:"method"`
	URL     string            `yaml:"url" json:"url"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Body    string            `yaml:"body,omitempty" json:"body,omitempty"`
}

// Response is the part of an HTTP response checks look at.
type Response struct {
	Status int
	Header http.Header
	Body   string
}

// Fetch performs req. Any status code is a successful fetch;
// only transport failures return an error.
func (c *Client) Fetch(ctx context.Context, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   string(data),
	}, nil
}

// Extract selects the value a check matches against:
//
//	"" or "body"   the body as a string
//	"status"       the status code
//	"header.<K>"   the first value of header K
//	"json.<path>"  a dotted path into the JSON body
func (r *Response) Extract(field string) (any, error) {
	switch {
	case field == "" || field == "body":
		return r.Body, nil
	case field == "status":
		return r.Status, nil
	case strings.HasPrefix(field, "header."):
		return r.Header.Get(strings.TrimPrefix(field, "header.")), nil
	case field == "json" || strings.HasPrefix(field, "json."):
		var doc any
		if err := json.Unmarshal([]byte(r.Body), &doc); err != nil {
			return nil, fmt.Errorf("parse response: %w", err)
		}
		path := strings.TrimPrefix(strings.TrimPrefix(field, "json"), ".")
		return lookup(doc, path)
	}
	return nil, fmt.Errorf("unknown field %q", field)
}

func lookup(doc any, path string) (any, error) {
	if path == "" {
		return doc, nil
	}
	cur := doc
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("json path %q: %q is not an object", path, key)
		}
		cur, ok = obj[key]
		if !ok {
			return nil, fmt.Errorf("json path %q: missing key %q", path, key)
		}
	}
	return cur, nil
}

// Probe returns a poll probe that fetches req and extracts field
// from each response.
func (c *Client) Probe(
	ctx context.Context,
	req Request,
	field string,
) poll.Probe[any] {
	return func() (any, error) {
		resp, err := c.Fetch(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Extract(field)
	}
}
