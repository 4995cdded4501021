package cache

import (
	"context"

	"github.com/gocql/gocql"

	"lavka_back_end/internal/models"
	"lavka_back_end/internal/services"
)

// Products est un services.ProductFinder avec cache Redis en façade de
// ScyllaDB : les totaux du panier relisent les mêmes produits en rafale.
type Products struct {
	Fallback services.ProductFinder
}

func productKey(id gocql.UUID) string {
	return "product:" + id.String()
}

func (c Products) FindProductByID(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	var cached models.Product
	if GetJSON(ctx, productKey(id), &cached) {
		return &cached, nil
	}

	product, err := c.Fallback.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	SetJSON(ctx, productKey(id), product, ProductCacheTTL)
	return product, nil
}

// InvalidateProduct invalide le cache d'un produit après une écriture.
func InvalidateProduct(ctx context.Context, id gocql.UUID) {
	Invalidate(ctx, productKey(id))
}
