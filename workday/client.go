package workday

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultMaxBodyBytes = 64 << 20

var ErrFetch = errors.New("fetch report")

// Client retrieves the raw export document.
type Client struct {
	URL          string
	HTTP         *http.Client
	MaxBodyBytes int64
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		URL:          url,
		HTTP:         &http.Client{Timeout: timeout},
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

func (c *Client) Source() string {
	return c.URL
}

// Fetch returns the export body. Any transport failure or non-2xx status is
// wrapped in ErrFetch.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	request.Header.Add("Accept", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %v returned %v", ErrFetch, c.URL, response.Status)
	}

	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	content, err := io.ReadAll(io.LimitReader(response.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if int64(len(content)) > limit {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrFetch, limit)
	}

	return content, nil
}
