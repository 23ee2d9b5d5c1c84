package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/RMahshie/soundmax/pkg/models"
	"github.com/rs/zerolog/log"
)

// HTTPFetcher downloads documents straight from the archive over HTTP
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher using client, or http.DefaultClient when nil
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Fetch issues a single GET for locator. The response status is not
// consulted; see decodeDocument.
func (f *HTTPFetcher) Fetch(ctx context.Context, locator models.Locator) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator.String(), nil)
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("failed to build request: %w", err)}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	log.Debug().
		Str("locator", locator.String()).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("Fetched correction document")

	return decodeDocument(body)
}
