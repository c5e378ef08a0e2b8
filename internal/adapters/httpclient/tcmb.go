package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultTodayURL is the bank's daily rates document.
const DefaultTodayURL = "https://www.tcmb.gov.tr/kurlar/today.xml"

// maxBodyBytes bounds the document size; the real one is around 20 KiB.
const maxBodyBytes = 2 << 20

type TCMBClient struct {
	http *http.Client
	url  string
}

// Fetch downloads the daily document. Any transport problem, a non-2xx status included,
// is returned as an error; the body is not interpreted here.
func (c *TCMBClient) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", c.url, err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for %q: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d from %q: %s", resp.StatusCode, c.url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %q: %w", c.url, err)
	}
	return body, nil
}

func NewTCMBClient(httpClient *http.Client, url string) *TCMBClient {
	if url == "" {
		url = DefaultTodayURL
	}
	return &TCMBClient{http: httpClient, url: url}
}
