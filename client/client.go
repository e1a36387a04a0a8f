// Package client talks to the game HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"noventagrados/server"
)

type Client struct {
	serverURL  string
	session    string
	httpClient *http.Client
}

type Option func(*Client)

// WithSession addresses a named session instead of the server's default one.
func WithSession(id string) Option {
	return func(c *Client) {
		c.session = id
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(serverURL string, opts ...Option) *Client {
	c := &Client{
		serverURL:  strings.TrimSuffix(serverURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSession asks the server for a fresh game and returns a client bound to
// it. An empty mode uses the server's default undo mode.
func (c *Client) NewSession(ctx context.Context, mode string) (*Client, error) {
	q := url.Values{}
	if mode != "" {
		q.Set("mode", mode)
	}
	id, err := c.do(ctx, http.MethodPost, "/game/new", q)
	if err != nil {
		return nil, err
	}
	return &Client{serverURL: c.serverURL, session: id, httpClient: c.httpClient}, nil
}

func (c *Client) Session() string { return c.session }

// Board returns the rendered board.
func (c *Client) Board(ctx context.Context) (string, error) {
	return c.get(ctx, "/game/board", nil)
}

// Move submits a move or a keyword and returns the server's status line.
func (c *Client) Move(ctx context.Context, token string) (string, error) {
	return c.get(ctx, "/game/move", url.Values{"move": {token}})
}

// LegalMoves lists the moves available to the side to move.
func (c *Client) LegalMoves(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/game/moves", nil)
	if err != nil {
		return nil, err
	}
	return strings.Fields(body), nil
}

func (c *Client) Stats(ctx context.Context) (server.Stats, error) {
	var stats server.Stats
	body, err := c.get(ctx, "/game/stats", nil)
	if err != nil {
		return stats, err
	}
	if err := json.Unmarshal([]byte(body), &stats); err != nil {
		return stats, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (string, error) {
	return c.do(ctx, http.MethodGet, path, q)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values) (string, error) {
	if q == nil {
		q = url.Values{}
	}
	if c.session != "" {
		q.Set("session", c.session)
	}
	target := c.serverURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}

// StatusError is returned for any answer other than 200 OK.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server answered %d: %s", e.Code, e.Body)
}
