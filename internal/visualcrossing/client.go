package visualcrossing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/PetoAdam/homenavi/weather-widget/internal/models"
)

const DefaultBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"

const maxErrorBody = 512

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if strings.TrimSpace(u) != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasCredential reports whether requests go to the provider. Without a key
// the client serves sample data so the widget stays usable.
func (c *Client) HasCredential() bool { return c.apiKey != "" }

// TimelineURL builds the request URL for location. The location is escaped
// as a single path segment.
func (c *Client) TimelineURL(location string) string {
	q := url.Values{}
	q.Set("unitGroup", "metric")
	q.Set("key", c.apiKey)
	q.Set("contentType", "json")
	return c.baseURL + "/" + url.PathEscape(location) + "?" + q.Encode()
}

// Fetch issues one timeline request for location. Failures come back as
// *FetchError and are logged here; the caller decides what the user sees.
func (c *Client) Fetch(ctx context.Context, location string) (models.RawWeatherResponse, error) {
	if c.apiKey == "" {
		return sampleTimeline(location, time.Now()), nil
	}

	raw, err := c.fetch(ctx, location)
	if err != nil {
		kind, _ := KindOf(err)
		c.logger.Warn("weather fetch failed", "location", location, "kind", kind, "error", err)
		return models.RawWeatherResponse{}, err
	}
	return raw, nil
}

func (c *Client) fetch(ctx context.Context, location string) (models.RawWeatherResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.TimelineURL(location), nil)
	if err != nil {
		return models.RawWeatherResponse{}, &FetchError{Kind: KindTransport, Location: location, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.RawWeatherResponse{}, &FetchError{Kind: KindTransport, Location: location, Err: redact(err, c.apiKey)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return models.RawWeatherResponse{}, &FetchError{
			Kind:       KindNetwork,
			Location:   location,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var raw models.RawWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.RawWeatherResponse{}, &FetchError{Kind: KindDecode, Location: location, Err: fmt.Errorf("decoding timeline: %w", err)}
	}
	return raw, nil
}

// *url.Error carries the full request URL, key included.
func redact(err error, apiKey string) error {
	if apiKey == "" {
		return err
	}
	if ue, ok := err.(*url.Error); ok {
		return &url.Error{Op: ue.Op, URL: strings.ReplaceAll(ue.URL, url.QueryEscape(apiKey), "REDACTED"), Err: ue.Err}
	}
	return err
}
