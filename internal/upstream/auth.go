package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for an upstream bearer token. The token
// is opaque; no refresh protocol exists and expiry later manifests as
// failed requests.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/users/login", "", loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return "", fmt.Errorf("c.newRequest -> %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return "", ErrInvalidCredentials
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &SubmissionError{
			Message: serverMessage(resp.Body),
			Err:     fmt.Errorf("unexpected status %v", resp.StatusCode),
		}
	}

	var payload loginResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("json.Decode -> %w", err)
	}
	if payload.Token == "" {
		return "", ErrTokenMissing
	}

	return payload.Token, nil
}
