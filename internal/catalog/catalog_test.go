package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RMahshie/soundmax/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	all := c.All()
	assert.Len(t, all, 33)
	assert.Equal(t, models.HeadphoneRef{Name: "Sennheiser HD 600", Source: "oratory1990", Category: models.CategoryOverEar}, all[0])
}

func TestSearch(t *testing.T) {
	c := Default()

	tests := []struct {
		query string
		want  []string
	}{
		{"hd 8", []string{"Sennheiser HD 800", "Sennheiser HD 800 S"}},
		{"MOONDROP", []string{"Moondrop Blessing 2", "Moondrop Starfield", "Moondrop Aria"}},
		{"(3rd", []string{"Apple AirPods (3rd generation)"}},
		{"nothing like this", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var names []string
			for _, h := range c.Search(tt.query) {
				names = append(names, h.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	assert.Len(t, c.Search("  "), len(c.All()), "blank query lists everything")
}

func TestFind(t *testing.T) {
	c := Default()

	h, ok := c.Find("grado sr80e")
	require.True(t, ok)
	assert.Equal(t, models.CategoryOnEar, h.Category)

	_, ok = c.Find("Grado")
	assert.False(t, ok, "substring is not an exact match")
}

func TestAllReturnsCopy(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Name = "changed"

	assert.Equal(t, "Sennheiser HD 600", c.All()[0].Name)
}

func TestParse_InvalidCategory(t *testing.T) {
	_, err := Parse(strings.NewReader("headphones:\n  - {name: X, source: y, type: bone-conduction}\n"))

	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("headphones:\n  - {name: Custom One, source: crinacle, type: In-Ear}\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	h, ok := c.Find("custom one")
	require.True(t, ok)
	assert.Equal(t, models.CategoryInEar, h.Category)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
