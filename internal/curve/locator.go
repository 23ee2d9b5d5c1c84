package curve

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/RMahshie/soundmax/pkg/models"
)

// DefaultArchiveRoot is the AutoEq results tree on GitHub
const DefaultArchiveRoot = "https://raw.githubusercontent.com/jaakkopasanen/AutoEq/master/results"

// LocatorBuilder derives document addresses below an archive root
type LocatorBuilder struct {
	root string
}

// NewLocatorBuilder creates a builder for the given archive root.
// An empty root selects DefaultArchiveRoot.
func NewLocatorBuilder(root string) LocatorBuilder {
	root = strings.TrimRight(strings.TrimSpace(root), "/")
	if root == "" {
		root = DefaultArchiveRoot
	}
	return LocatorBuilder{root: root}
}

// Root returns the archive root the builder was created with
func (b LocatorBuilder) Root() string {
	return b.root
}

// Build returns the GraphicEQ document address for ref:
// <root>/<source>/<category>/<name>/<name>%20GraphicEQ.txt
func (b LocatorBuilder) Build(ref models.HeadphoneRef) models.Locator {
	name := url.PathEscape(ref.Name)
	return models.Locator(fmt.Sprintf("%s/%s/%s/%s/%s%%20GraphicEQ.txt",
		b.root, ref.Source, ref.Category, name, name))
}

// BuildLocator builds a locator below DefaultArchiveRoot
func BuildLocator(ref models.HeadphoneRef) models.Locator {
	return NewLocatorBuilder("").Build(ref)
}
