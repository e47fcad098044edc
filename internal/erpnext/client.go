package erpnext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sndbilling/internal/config"
)

// Client talks to an ERPNext-compatible accounting backend over its REST
// resource API, with the RPC-style method API as a submission fallback.
// A Client is safe for concurrent use; it holds no per-call state.
type Client struct {
	baseURL        string
	apiKey         string
	apiSecret      string
	defaultCompany string
	http           *http.Client
	log            zerolog.Logger
}

// NewClient validates credentials and builds a client. Missing settings
// fail fast with a ConfigError enumerating the absent variable names.
func NewClient(cfg config.ERPNextConfig, log zerolog.Logger) (*Client, error) {
	if missing := cfg.MissingVars(); len(missing) > 0 {
		return nil, &ConfigError{Missing: missing}
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		apiSecret:      cfg.APISecret,
		defaultCompany: cfg.DefaultCompany,
		http:           &http.Client{Timeout: timeout},
		log:            log,
	}, nil
}

// resourcePath builds an escaped /api/resource path for a doctype and
// optional document name. Doctype names contain spaces.
func resourcePath(doctype string, name ...string) string {
	p := "/api/resource/" + url.PathEscape(doctype)
	for _, n := range name {
		p += "/" + url.PathEscape(n)
	}
	return p
}

// do issues one request and returns the enveloped payload: the resource
// API wraps results in "data", the RPC-style method API in "message",
// and anything else comes back whole. Non-2xx responses become an
// *APIError with diagnostics from the error body.
func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.apiKey+":"+c.apiSecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling erpnext API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Status:   resp.StatusCode,
			Endpoint: path,
			Details:  extractDetails(respBody),
		}
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("endpoint", path).
			Str("details", apiErr.Details).
			Msg("erpnext.Client.do: request failed")
		return nil, apiErr
	}

	var envelope struct {
		Data    json.RawMessage `json:"data"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(respBody, &envelope); err == nil {
		if len(envelope.Data) > 0 {
			return envelope.Data, nil
		}
		if len(envelope.Message) > 0 {
			return envelope.Message, nil
		}
	}
	return respBody, nil
}

// get unmarshals a GET response payload into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
