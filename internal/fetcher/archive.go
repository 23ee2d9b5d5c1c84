package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/RMahshie/soundmax/internal/storage"
	"github.com/RMahshie/soundmax/pkg/models"
	"github.com/rs/zerolog/log"
)

// ArchiveFetcher reads documents from an object-store mirror of the archive.
// A locator maps to the object key <prefix>/<path below root>, unescaped.
type ArchiveFetcher struct {
	store  storage.ObjectStore
	root   string
	prefix string
}

// NewArchiveFetcher creates a mirror fetcher for locators built under root
func NewArchiveFetcher(store storage.ObjectStore, root, prefix string) *ArchiveFetcher {
	return &ArchiveFetcher{
		store:  store,
		root:   strings.TrimRight(root, "/"),
		prefix: strings.Trim(prefix, "/"),
	}
}

// Fetch reads the object for locator. Missing objects count as missing
// documents; any other store failure is a network failure.
func (f *ArchiveFetcher) Fetch(ctx context.Context, locator models.Locator) (string, error) {
	key, err := f.ObjectKey(locator)
	if err != nil {
		return "", &NetworkError{Err: err}
	}

	body, err := f.store.GetObject(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
		}
		return "", &NetworkError{Err: err}
	}

	log.Debug().Str("key", key).Int("bytes", len(body)).Msg("Read correction document from mirror")
	return decodeDocument(body)
}

// ObjectKey converts a locator into its mirror object key
func (f *ArchiveFetcher) ObjectKey(locator models.Locator) (string, error) {
	rel, ok := strings.CutPrefix(locator.String(), f.root+"/")
	if !ok {
		return "", fmt.Errorf("locator %q is outside archive root %q", locator, f.root)
	}

	unescaped, err := url.PathUnescape(rel)
	if err != nil {
		return "", fmt.Errorf("invalid locator path: %w", err)
	}

	if f.prefix == "" {
		return unescaped, nil
	}
	return path.Join(f.prefix, unescaped), nil
}
