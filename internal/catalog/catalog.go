package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RMahshie/soundmax/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed headphones.yaml
var builtin []byte

// Catalog is a read-only list of known headphones
type Catalog struct {
	entries []models.HeadphoneRef
}

type catalogFile struct {
	Headphones []models.HeadphoneRef `yaml:"headphones"`
}

// Default returns the built-in catalog of popular headphones
func Default() *Catalog {
	c, err := Parse(bytes.NewReader(builtin))
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in headphones.yaml is invalid: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file with the built-in layout
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a YAML catalog
func Parse(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	for i, h := range file.Headphones {
		category, err := models.ParseCategory(string(h.Category))
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, h.Name, err)
		}
		file.Headphones[i].Category = category
	}
	return &Catalog{entries: file.Headphones}, nil
}

// All returns every entry in catalog order
func (c *Catalog) All() []models.HeadphoneRef {
	return append([]models.HeadphoneRef(nil), c.entries...)
}

// Search returns entries whose name contains query, ignoring case.
// An empty query returns the whole catalog.
func (c *Catalog) Search(query string) []models.HeadphoneRef {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}

	var matches []models.HeadphoneRef
	for _, h := range c.entries {
		if strings.Contains(strings.ToLower(h.Name), q) {
			matches = append(matches, h)
		}
	}
	return matches
}

// Find returns the entry whose name equals name, ignoring case
func (c *Catalog) Find(name string) (models.HeadphoneRef, bool) {
	name = strings.TrimSpace(name)
	for _, h := range c.entries {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return models.HeadphoneRef{}, false
}
