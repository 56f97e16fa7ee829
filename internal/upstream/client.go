// Package upstream is the typed client for the remote pharmacy API.
// Every persistent resource lives there; this service only holds the
// session's bearer token and passes it on each request.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/silendas/pharmacy-backoffice/internal/config"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(conf *config.UpstreamConfig) *Client {
	timeout := defaultTimeout
	if conf.TimeoutSeconds > 0 {
		timeout = time.Duration(conf.TimeoutSeconds) * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal -> %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// getJSON performs an authenticated read. Any failure, transport or
// HTTP, surfaces as a FetchError for the named resource so one failed
// read never blocks the others.
func getJSON[T any](ctx context.Context, c *Client, path, token, resource string) (T, error) {
	var out T

	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return out, &FetchError{Resource: resource, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return out, &FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return out, &FetchError{Resource: resource, Err: fmt.Errorf("unexpected status %v", resp.StatusCode)}
	}

	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, &FetchError{Resource: resource, Err: fmt.Errorf("json.Decode -> %w", err)}
	}

	return out, nil
}

// sendJSON performs an authenticated write and decodes the created or
// updated record. Failures surface as a SubmissionError carrying the
// server-provided message when the body has one.
func sendJSON[T any](ctx context.Context, c *Client, method, path, token string, body any) (T, error) {
	var out T

	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return out, &SubmissionError{Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return out, &SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return out, &SubmissionError{
			Message: serverMessage(resp.Body),
			Err:     fmt.Errorf("unexpected status %v", resp.StatusCode),
		}
	}

	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, &SubmissionError{Err: fmt.Errorf("json.Decode -> %w", err)}
	}

	return out, nil
}

// send is sendJSON for endpoints whose response body is not needed.
func send(ctx context.Context, c *Client, method, path, token string, body any) error {
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return &SubmissionError{Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &SubmissionError{
			Message: serverMessage(resp.Body),
			Err:     fmt.Errorf("unexpected status %v", resp.StatusCode),
		}
	}

	return nil
}

func serverMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}

	return payload.Message
}
