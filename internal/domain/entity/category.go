package entity

import "time"

// Category groups products. Slug is a URL-safe version of the name, derived
// on creation when empty.
type Category struct {
	ID          string
	Name        string
	Description string
	Slug        string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
