// Package nasa wraps the four NASA REST services the bot talks to: the
// astronomy picture of the day, the EPIC Earth camera, the Mars rover photo
// API, and the NASA image library search. Every method returns fully formatted
// post text; transport and decoding failures never escape as raw errors.
package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"astrobot/core/logger"
	"log/slog"
)

const (
	apodBaseURL   = "https://api.nasa.gov/planetary/apod"
	epicBaseURL   = "https://api.nasa.gov/EPIC"
	marsBaseURL   = "https://api.nasa.gov/mars-photos/api/v1/rovers"
	imagesBaseURL = "https://images-api.nasa.gov"

	requestTimeout = 10 * time.Second
)

// Client calls the NASA APIs with a shared HTTP client and API key.
type Client struct {
	http   *http.Client
	apiKey string

	apodBase   string
	epicBase   string
	marsBase   string
	imagesBase string

	epicDates epicDateCache
}

// NewClient builds a Client with an explicit request timeout so a stalled
// NASA endpoint can only ever block one chat for a bounded time.
func NewClient(apiKey string) *Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		http:       &http.Client{Timeout: requestTimeout, Transport: transport},
		apiKey:     apiKey,
		apodBase:   apodBaseURL,
		epicBase:   epicBaseURL,
		marsBase:   marsBaseURL,
		imagesBase: imagesBaseURL,
	}
}

// getJSON performs a GET request and decodes the JSON body into out. All
// failures are wrapped into ConnectionError at this boundary.
func (c *Client) getJSON(ctx context.Context, service, url string, out any) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &ConnectionError{Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error(ctx, "nasa", "request.fail",
			slog.String("service", service),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn(ctx, "nasa", "request.status",
			slog.String("service", service),
			slog.Int("http_code", resp.StatusCode),
			slog.Duration("duration", logger.Took(start)),
		)
		return &ConnectionError{Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error(ctx, "nasa", "decode.fail",
			slog.String("service", service),
			slog.String("err", err.Error()),
		)
		return &ConnectionError{Err: err}
	}

	logger.Debug(ctx, "nasa", "request.ok",
		slog.String("service", service),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}
