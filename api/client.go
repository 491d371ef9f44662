package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout mirrors the HTTP timeout the storefront has always used
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response body is read when looking
// for a server-supplied message
const maxErrorBody = 64 << 10

// TokenSource supplies the bearer token for authenticated requests. An empty
// token means the request is sent anonymously.
type TokenSource interface {
	Token() string
}

// Client is the storefront REST API client. All endpoint bindings go through
// do, which classifies failures into the error kinds in errors.go.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *logrus.Entry
}

// NewClient creates a Client for the API at baseURL. tokens may be nil for a
// purely anonymous client.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     logrus.WithField("component", "api"),
	}
}

// errorEnvelope is the shape the server uses for error bodies
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one request. body is JSON-encoded when non-nil; the response is
// decoded into out when out is non-nil. Transport failures become
// *NetworkError, non-2xx statuses become *ServerRejectedError and undecodable
// bodies become *MalformedResponseError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "path": path}).
			WithError(err).Warn("request failed before a response arrived")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerRejectedError{
			Status:  resp.StatusCode,
			Message: extractMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponseError{Reason: "decoding " + method + " " + path, Err: err}
	}
	return nil
}

// extractMessage pulls the server's error message out of a response body.
// The API wraps errors as {"message": ...}; plain-text bodies are used as-is.
func extractMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
		return ""
	}
	return strings.TrimSpace(string(raw))
}
