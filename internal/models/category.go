package models

import (
	"fmt"
	"strings"
)

// Category is an employee's department label. The set is closed and ordered.
type Category string

const (
	CategoryCEO        Category = "CEO"
	CategoryCMO        Category = "CMO"
	CategoryMarketing  Category = "Marketing"
	CategoryData       Category = "Data"
	CategoryIT         Category = "IT"
	CategoryDesign     Category = "Design"
	CategoryAccountant Category = "Accountant"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCEO,
	CategoryCMO,
	CategoryMarketing,
	CategoryData,
	CategoryIT,
	CategoryDesign,
	CategoryAccountant,
}

// ParseCategory matches s against the known categories, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c.Rank() >= 0
}

// Rank returns the display position of c, or -1 for unknown categories.
func (c Category) Rank() int {
	for i, known := range Categories {
		if known == c {
			return i
		}
	}
	return -1
}

func (c Category) String() string { return string(c) }
