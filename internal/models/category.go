package models

import (
	"github.com/gocql/gocql"
)

// Category regroupe des sous-catégories de produits.
type Category struct {
	ID            gocql.UUID    `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	ImageURL      *string       `json:"image,omitempty"`
	SubCategories []SubCategory `json:"subcategories"`
}

// SubCategory appartient à exactement une catégorie (suppression en cascade
// gérée côté API).
type SubCategory struct {
	ID         gocql.UUID `json:"id"`
	CategoryID gocql.UUID `json:"category_id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	ImageURL   *string    `json:"image,omitempty"`
}
