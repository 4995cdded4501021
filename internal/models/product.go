package models

import (
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
)

// Product représente un produit du catalogue.
// Le prix est stocké en texte côté ScyllaDB et manipulé en décimal exact
// (10 chiffres, 2 décimales) — jamais en float64.
type Product struct {
	ID            gocql.UUID      `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	SubCategoryID gocql.UUID      `json:"subcategory_id"`
	Price         decimal.Decimal `json:"price"`
	ImageKey      string          `json:"image_key,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// HasImage indique si une image source a été téléversée pour ce produit.
func (p *Product) HasImage() bool {
	return p.ImageKey != ""
}
