package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	domain "github.com/osa030/moodmix/internal/domain/playlist"
)

// Client is an HTTP client for the API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Client for the server at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Health returns the server status message.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return "", err
	}
	return out.Status + ": " + out.Message, nil
}

// Generate requests a new playlist.
func (c *Client) Generate(ctx context.Context, req domain.Request) (*domain.Playlist, error) {
	var p domain.Playlist
	if err := c.do(ctx, http.MethodPost, "/api/generate-playlist", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the user's saved playlists, newest first.
func (c *Client) List(ctx context.Context, userID string) ([]domain.Playlist, error) {
	var playlists []domain.Playlist
	if err := c.do(ctx, http.MethodGet, "/api/playlists/"+url.PathEscape(userID), nil, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// Delete deletes a saved playlist.
func (c *Client) Delete(ctx context.Context, playlistID string) error {
	return c.do(ctx, http.MethodDelete, "/api/playlists/"+url.PathEscape(playlistID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
