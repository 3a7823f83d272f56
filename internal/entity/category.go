package entity

import (
	"strings"
	"time"
)

// Category is a reference entity consumed by ads.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory builds a validated category. Slug defaults to a lowercased,
// dash-separated form of the name.
func NewCategory(name, slug, description string) (*Category, error) {
	if slug == "" {
		slug = Slugify(name)
	}
	now := time.Now().UTC()
	c := &Category{
		Name:        name,
		Slug:        slug,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the category invariants.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return newValidationError("name", "cannot be empty")
	}
	if strings.TrimSpace(c.Slug) == "" {
		return newValidationError("slug", "cannot be empty")
	}
	return nil
}

// Slugify lowercases a name and replaces whitespace runs with dashes.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
}
