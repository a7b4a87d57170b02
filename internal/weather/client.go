package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Fetcher retrieves current conditions for a coordinate.
// This interface is implemented by *Client and *OpenMeteo.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (Response, error)
	Ping(ctx context.Context) error
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to a watch-face weather endpoint that answers
// {"icon": n, "temperature": n}.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "vie/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the endpoint URL.
func NewClient(endpoint string) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Fetch requests the weather for req. Coordinates travel as fixed-point
// integers, the way the face stores them.
func (c *Client) Fetch(ctx context.Context, req Request) (Response, error) {
	if c == nil {
		return Response{Cookie: req.Cookie}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("lat", strconv.FormatInt(int64(req.Coordinate.LatE4), 10))
	values.Set("lon", strconv.FormatInt(int64(req.Coordinate.LngE4), 10))
	values.Set("units", string(req.Units))

	u := *c.endpoint
	u.RawQuery = values.Encode()

	var fields Fields
	status, err := doJSON(ctx, c.http, c.userAgent, &u, &fields)
	return Response{Cookie: req.Cookie, Status: status, Fields: fields}, err
}

// Ping checks that the endpoint is reachable. Any answer below 500 counts.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return ping(ctx, c.http, c.userAgent, c.endpoint)
}

func doJSON(ctx context.Context, client *http.Client, userAgent string, u *url.URL, dest any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return resp.StatusCode, &StatusError{Status: resp.StatusCode, Path: u.Path}
	}
	if dest == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func ping(ctx context.Context, client *http.Client, userAgent string, u *url.URL) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return &StatusError{Status: resp.StatusCode, Path: u.Path}
	}
	return nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("weather url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse weather url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
