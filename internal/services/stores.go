package services

import (
	"context"
	"time"

	"github.com/gocql/gocql"

	"lavka_back_end/internal/models"
)

// ProductFinder résout un produit par son identifiant.
// L'implémentation de production passe par le cache Redis avant ScyllaDB.
type ProductFinder interface {
	FindProductByID(ctx context.Context, id gocql.UUID) (*models.Product, error)
}

// CatalogStore expose le catalogue persistant (collaborateur externe au
// sens du cœur : contrat figé, pagination 1-based).
type CatalogStore interface {
	ProductFinder
	InsertProduct(ctx context.Context, p *models.Product) error
	// ReserveSlug pose le slug de façon atomique ; false si déjà pris.
	ReserveSlug(ctx context.Context, slug string, productID gocql.UUID) (bool, error)
	SetProductImageKey(ctx context.Context, id gocql.UUID, key string) error
	ListCategories(ctx context.Context, page, pageSize int) ([]models.Category, int, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]models.Product, int, error)
}

// CartStore persiste les paniers et leurs lignes. Les implémentations
// doivent garantir : au plus un panier par utilisateur (création
// compare-and-set), au plus une ligne par couple (panier, produit), et des
// écritures last-write-wins sérialisées par le store.
type CartStore interface {
	// GetOrCreateCart crée le panier s'il n'existe pas ; deux appels
	// concurrents pour le même utilisateur retournent le même panier.
	GetOrCreateCart(ctx context.Context, userID string) (*models.Cart, error)
	// GetCart retourne ErrCartNotFound si l'utilisateur n'a pas de panier.
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	UpsertItem(ctx context.Context, cartID, productID gocql.UUID, quantity int) error
	DeleteItem(ctx context.Context, cartID, productID gocql.UUID) error
	ListItems(ctx context.Context, cartID gocql.UUID) ([]models.CartItem, error)
	ClearItems(ctx context.Context, cartID gocql.UUID) error
}

// BlobStore abstrait le stockage objet (MinIO en production).
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Stat retourne l'ETag de l'objet, ou ErrObjectMissing.
	Stat(ctx context.Context, key string) (string, error)
	PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
