package models

import (
	"fmt"
	"strings"
)

// Category is the physical form factor of a headphone
type Category string

const (
	CategoryOverEar Category = "over-ear"
	CategoryInEar   Category = "in-ear"
	CategoryOnEar   Category = "on-ear"
)

// Categories lists every supported form factor
var Categories = []Category{CategoryOverEar, CategoryInEar, CategoryOnEar}

// ParseCategory converts a form factor string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryOverEar, CategoryInEar, CategoryOnEar:
		return c, nil
	}
	return "", fmt.Errorf("unknown headphone category %q", s)
}

// DisplayName returns the human-readable form factor
func (c Category) DisplayName() string {
	switch c {
	case CategoryOverEar:
		return "Over-ear"
	case CategoryInEar:
		return "In-ear"
	case CategoryOnEar:
		return "On-ear"
	default:
		return string(c)
	}
}

// HeadphoneRef identifies a correction-curve document in the archive
type HeadphoneRef struct {
	Name     string   `json:"name" yaml:"name" minLength:"1" maxLength:"200" doc:"Headphone model name as published in the archive"`
	Source   string   `json:"source" yaml:"source" minLength:"1" maxLength:"100" doc:"Measurement source (e.g. oratory1990, crinacle)"`
	Category Category `json:"category" yaml:"type" enum:"over-ear,in-ear,on-ear" doc:"Headphone form factor"`
}

func (r HeadphoneRef) String() string {
	return fmt.Sprintf("%s (%s, %s)", r.Name, r.Source, r.Category)
}
