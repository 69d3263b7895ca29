// Package strapi is the REST client for the headless CMS. It follows the CMS
// conventions: documentId addressing, populate query strings, {data: ...}
// envelopes, connect/disconnect relation payloads and JWT bearer auth.
package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ClientConfig holds the connection settings for the CMS
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a thin resty wrapper shared by every resource.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a CMS client. The base URL is read once here.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		logger: logger.With("component", "strapi"),
	}
}

type tokenKey struct{}

// WithToken returns a context carrying the caller's bearer token. Every request made
// with that context forwards it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token carried by ctx.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// request prepares an authenticated request
func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token := TokenFrom(ctx); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// check turns a transport failure or non-2xx response into an error and logs it
func (c *Client) check(ctx context.Context, resource, op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.ErrorContext(ctx, "CMS request failed",
			"resource", resource,
			"op", op,
			"error", err)
		return fmt.Errorf("%s %s: %w", op, resource, err)
	}
	if !resp.IsSuccess() {
		apiErr := newAPIError(resource, resp.StatusCode(), resp.Body())
		c.logger.WarnContext(ctx, "CMS rejected request",
			"resource", resource,
			"op", op,
			"status", resp.StatusCode(),
			"message", apiErr.Message)
		return apiErr
	}
	return nil
}

// decodeBody unmarshals a successful answer into v. The Content-Type header is not
// trusted: proxies in front of the CMS are known to drop it.
func decodeBody(resource string, raw []byte, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("decode %s: %w", resource, ErrEmptyResponse)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", resource, err)
	}
	return nil
}

// Ping checks that the CMS answers at all. Any HTTP answer counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/_health")
	if err != nil {
		return fmt.Errorf("cms unreachable: %w", err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("cms unhealthy: status %d", resp.StatusCode())
	}
	return nil
}
