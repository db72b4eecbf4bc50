// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package client talks to a themeforge server over HTTP. Client satisfies
// bridge.RemoteStore, so the CLI edits against the same persistence
// bridge as the server with the HTTP API as its remote.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"themeforge/internal/models"
)

// DefaultTimeout bounds each request.
const DefaultTimeout = 30 * time.Second

// Error codes, in the same shape as the store codes so notices classify
// them identically.
const (
	CodePermissionDenied   = "http/permission-denied"
	CodeUnauthenticated    = "http/unauthenticated"
	CodeFailedPrecondition = "http/failed-precondition"
	CodeNotFound           = "http/not-found"
	CodeUnavailable        = "http/unavailable"
	CodeUnknown            = "http/unknown"
)

// Error is a failed API call.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (status %d)", e.Code, e.Status)
	}
	return fmt.Sprintf("%s (status %d): %s", e.Code, e.Status, e.Message)
}

// ErrorCode returns the namespaced code.
func (e *Error) ErrorCode() string { return e.Code }

// codeForStatus maps an HTTP status to an error code.
func codeForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return CodeUnauthenticated
	case status == http.StatusForbidden:
		return CodePermissionDenied
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusBadRequest, status == http.StatusConflict,
		status == http.StatusPreconditionFailed, status == http.StatusUnprocessableEntity,
		status == http.StatusRequestEntityTooLarge:
		return CodeFailedPrecondition
	case status >= 500:
		return CodeUnavailable
	}
	return CodeUnknown
}

// Client calls the theme API of one server.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// New creates a client for baseURL. token is the admin token sent as a
// bearer credential; it may be empty for read-only use.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// do sends a request and returns the response body for 2xx responses.
// Other statuses become an *Error carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("themeforge request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Code: CodeUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("themeforge read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Code:    codeForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(respBody),
		}
	}
	return respBody, nil
}

// errorMessage extracts {"error": "..."} from a response body.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}

// Get returns the published snapshot. Returns nil if nothing is published
// or the document is malformed.
func (c *Client) Get(ctx context.Context, themeID string) (*models.Snapshot, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/themes/"+themeID, nil)
	if err != nil {
		if e, ok := err.(*Error); ok && e.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return models.DecodeSnapshot(body), nil
}

// Save publishes s.
func (c *Client) Save(ctx context.Context, themeID string, s *models.Snapshot) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("themeforge marshal: %w", err)
	}
	_, err = c.do(ctx, http.MethodPut, "/api/themes/"+themeID, payload)
	return err
}

// TokensCSS downloads the stylesheet generated from the published theme.
func (c *Client) TokensCSS(ctx context.Context, themeID string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/themes/"+themeID+"/tokens.css", nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Fonts lists the server's uploaded fonts.
func (c *Client) Fonts(ctx context.Context) ([]models.LocalFontAsset, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/fonts", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Fonts []models.LocalFontAsset `json:"fonts"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("themeforge unmarshal fonts: %w", err)
	}
	return resp.Fonts, nil
}
