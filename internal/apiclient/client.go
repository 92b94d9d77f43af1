// Package apiclient talks to the backend bookstore API. All business
// rules, persistence and authorization live there; every method here
// builds one request, issues one HTTP call and decodes the response.

package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/akstore/bookstore-admin/internal/session"
)

// Client is the facade over the backend REST API. One instance is
// created at startup from the configured origin and shared by all
// requests; it holds no per-request state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given backend origin, e.g.
// "http://178.18.250.240:9050". The origin is validated at startup by
// the config package; it is never empty here.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildURL joins the backend origin with a path and optional query.
func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// newRequest assembles an outbound request with the standard header
// set. Authorization is attached only when the session has a token.
// contentType is empty for GET/DELETE and for multipart bodies, where
// the caller sets the boundary-bearing header itself.
func (c *Client) newRequest(ctx context.Context, sess session.Session, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", c.baseURL)
	req.Header.Set("X-Application-Platform", "Web-Browser")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if sess.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	return req, nil
}

// do executes the request and decodes a 2xx JSON body into v (v may be
// nil when the caller only cares about success). Non-2xx responses are
// translated by decodeError; a body that fails to decode is a transport
// failure, not a silent nil.
func (c *Client) do(req *http.Request, v interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if v == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("malformed backend response: %w", err)
	}
	return nil
}

// getJSON is the common read path: build, send, decode.
func (c *Client) getJSON(ctx context.Context, sess session.Session, path string, query url.Values, v interface{}) error {
	req, err := c.newRequest(ctx, sess, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, v)
}

// postForm sends a urlencoded form body.
func (c *Client) postForm(ctx context.Context, sess session.Session, path string, form url.Values, v interface{}) error {
	req, err := c.newRequest(ctx, sess, http.MethodPost, path, nil,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return err
	}
	return c.do(req, v)
}

// delete issues a DELETE and discards any response body.
func (c *Client) delete(ctx context.Context, sess session.Session, path string) error {
	req, err := c.newRequest(ctx, sess, http.MethodDelete, path, nil, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
