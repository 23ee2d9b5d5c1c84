package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/RMahshie/soundmax/pkg/models"
)

var (
	// ErrNetwork matches every *NetworkError
	ErrNetwork = errors.New("network failure")
	// ErrUndecodableBody is returned when the document is not UTF-8 text
	ErrUndecodableBody = errors.New("response body is not valid UTF-8 text")
	// ErrDocumentNotFound is returned when the archive served its placeholder body
	ErrDocumentNotFound = errors.New("correction document not found")
)

// Fetcher retrieves the raw text of a correction-curve document.
// Implementations make exactly one attempt per call.
type Fetcher interface {
	Fetch(ctx context.Context, locator models.Locator) (string, error)
}

// NetworkError wraps a transport-level failure
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrNetwork
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// notFoundMarkers are looked for in the decoded body. The archive answers
// missing documents with a success status and a "404: Not Found" body, so
// this is a content check and not an HTTP status check.
var notFoundMarkers = []string{"404", "Not Found"}

// decodeDocument turns a raw body into document text
func decodeDocument(body []byte) (string, error) {
	if !utf8.Valid(body) {
		return "", ErrUndecodableBody
	}
	doc := string(body)

	for _, marker := range notFoundMarkers {
		if strings.Contains(doc, marker) {
			return "", ErrDocumentNotFound
		}
	}
	return doc, nil
}
