package api

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

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Client wraps all calls to the storefront REST backend. Authenticated
// operations take the bearer token explicitly so the caller reads it fresh
// from the session on every request; the client never caches credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient builds a client for the backend at baseURL. A nil httpClient
// falls back to a 10 second timeout default.
func NewClient(baseURL string, httpClient *http.Client, log logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// Error is a non-2xx backend response. The status and body are logged and
// carried to the caller; the UI only ever shows a static generic message.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized reports whether err is a backend 401. Handlers use it to
// clear the session and bounce the user back to the login page.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// envelope is the backend's {"data": ...} wrapper. Some endpoints return the
// payload bare, so missing data falls back to decoding the whole body.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, query url.Values, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, token, query, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send executes the request and decodes the enveloped response into out.
// Failures come in three shapes — HTTP error response, network failure,
// unexpected decode error — and every shape is logged, never swallowed.
func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method": req.Method,
			"url":    req.URL.String(),
			"error":  err,
		}).Error("backend request failed")
		return errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.WithField("error", err).Error("failed to read backend response")
		return errors.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode, Body: string(raw)}
		c.log.WithFields(logrus.Fields{
			"method": req.Method,
			"url":    req.URL.String(),
			"status": resp.StatusCode,
			"body":   string(raw),
		}).Error("backend responded with error")
		return apiErr
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.WithFields(logrus.Fields{
			"url":   req.URL.String(),
			"error": err,
		}).Error("unexpected backend response")
		return errors.Wrapf(err, "decode %s response", req.URL.Path)
	}
	return nil
}

// pageQuery translates the dashboard's zero-based page number to the
// backend's one-based pageNo query parameter.
func pageQuery(pageNo, pageSize int) url.Values {
	q := url.Values{}
	q.Set("pageNo", fmt.Sprintf("%d", pageNo+1))
	q.Set("pageSize", fmt.Sprintf("%d", pageSize))
	return q
}
