// Package store contient les implémentations ScyllaDB des contrats de
// persistance du catalogue et du panier.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"lavka_back_end/internal/database"
	"lavka_back_end/internal/models"
	"lavka_back_end/internal/services"
)

// ScyllaCatalog implémente services.CatalogStore.
type ScyllaCatalog struct{}

func (ScyllaCatalog) FindProductByID(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	var (
		p        models.Product
		priceRaw string
	)
	p.ID = id
	err := database.Scylla.Query(
		`SELECT name, slug, subcategory_id, price, image_key, created_at, updated_at FROM products WHERE product_id = ?`,
		id,
	).WithContext(ctx).Scan(&p.Name, &p.Slug, &p.SubCategoryID, &priceRaw, &p.ImageKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, services.ErrProductNotFound
		}
		return nil, fmt.Errorf("lecture produit: %w", err)
	}

	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return nil, fmt.Errorf("prix corrompu pour %s: %w", id, err)
	}
	p.Price = price
	return &p, nil
}

func (ScyllaCatalog) InsertProduct(ctx context.Context, p *models.Product) error {
	err := database.Scylla.Query(
		`INSERT INTO products (product_id, name, slug, subcategory_id, price, image_key, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Slug, p.SubCategoryID, p.Price.StringFixed(2), p.ImageKey, p.CreatedAt, p.UpdatedAt,
	).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("création produit: %w", err)
	}
	return nil
}

// ReserveSlug réserve un slug par transaction légère : l'unicité globale
// est garantie par le store, pas par le code appelant.
func (ScyllaCatalog) ReserveSlug(ctx context.Context, slug string, productID gocql.UUID) (bool, error) {
	prev := make(map[string]interface{})
	applied, err := database.Scylla.Query(
		`INSERT INTO product_slugs (slug, product_id) VALUES (?, ?) IF NOT EXISTS`,
		slug, productID,
	).WithContext(ctx).MapScanCAS(prev)
	if err != nil {
		return false, fmt.Errorf("réservation slug: %w", err)
	}
	return applied, nil
}

func (ScyllaCatalog) SetProductImageKey(ctx context.Context, id gocql.UUID, key string) error {
	err := database.Scylla.Query(
		`UPDATE products SET image_key = ?, updated_at = ? WHERE product_id = ?`,
		key, time.Now(), id,
	).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("mise à jour image produit: %w", err)
	}
	return nil
}

// ListCategories retourne une page de catégories avec leurs sous-catégories
// imbriquées, triées par nom décroissant, plus le nombre total.
// ScyllaDB ne pagine pas par offset : on scanne et on découpe en mémoire,
// le catalogue reste petit et la page passe par le cache Redis en amont.
func (ScyllaCatalog) ListCategories(ctx context.Context, page, pageSize int) ([]models.Category, int, error) {
	subsByCategory := make(map[gocql.UUID][]models.SubCategory)
	iter := database.Scylla.Query(
		`SELECT category_id, subcategory_id, name, slug, image_url FROM subcategories`,
	).WithContext(ctx).Iter()

	var sub models.SubCategory
	for iter.Scan(&sub.CategoryID, &sub.ID, &sub.Name, &sub.Slug, &sub.ImageURL) {
		subsByCategory[sub.CategoryID] = append(subsByCategory[sub.CategoryID], sub)
		sub = models.SubCategory{}
	}
	if err := iter.Close(); err != nil {
		return nil, 0, fmt.Errorf("lecture sous-catégories: %w", err)
	}

	var categories []models.Category
	var cat models.Category
	iter = database.Scylla.Query(
		`SELECT category_id, name, slug, image_url FROM categories`,
	).WithContext(ctx).Iter()
	for iter.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.ImageURL) {
		cat.SubCategories = subsByCategory[cat.ID]
		if cat.SubCategories == nil {
			cat.SubCategories = []models.SubCategory{}
		}
		sort.Slice(cat.SubCategories, func(i, j int) bool {
			return cat.SubCategories[i].Name > cat.SubCategories[j].Name
		})
		categories = append(categories, cat)
		cat = models.Category{}
	}
	if err := iter.Close(); err != nil {
		return nil, 0, fmt.Errorf("lecture catégories: %w", err)
	}

	sort.Slice(categories, func(i, j int) bool { return categories[i].Name > categories[j].Name })

	total := len(categories)
	lo, hi := pageBounds(total, page, pageSize)
	return categories[lo:hi], total, nil
}

// ListProducts retourne une page de produits triés par nom décroissant,
// plus le nombre total.
func (ScyllaCatalog) ListProducts(ctx context.Context, page, pageSize int) ([]models.Product, int, error) {
	var products []models.Product
	var (
		p        models.Product
		priceRaw string
	)
	iter := database.Scylla.Query(
		`SELECT product_id, name, slug, subcategory_id, price, image_key, created_at, updated_at FROM products`,
	).WithContext(ctx).Iter()
	for iter.Scan(&p.ID, &p.Name, &p.Slug, &p.SubCategoryID, &priceRaw, &p.ImageKey, &p.CreatedAt, &p.UpdatedAt) {
		price, err := decimal.NewFromString(priceRaw)
		if err != nil {
			return nil, 0, fmt.Errorf("prix corrompu pour %s: %w", p.ID, err)
		}
		p.Price = price
		products = append(products, p)
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		return nil, 0, fmt.Errorf("lecture produits: %w", err)
	}

	sort.Slice(products, func(i, j int) bool { return products[i].Name > products[j].Name })

	total := len(products)
	lo, hi := pageBounds(total, page, pageSize)
	return products[lo:hi], total, nil
}

func pageBounds(total, page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	lo := (page - 1) * pageSize
	if lo > total {
		lo = total
	}
	hi := lo + pageSize
	if hi > total {
		hi = total
	}
	return lo, hi
}

// ScyllaCarts implémente services.CartStore.
type ScyllaCarts struct{}

// GetOrCreateCart crée la ligne panier avec un INSERT ... IF NOT EXISTS
// (transaction légère) : deux appels concurrents pour le même utilisateur
// ne peuvent pas créer deux paniers, le perdant lit la ligne déjà posée.
func (ScyllaCarts) GetOrCreateCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart := models.Cart{
		ID:        gocql.TimeUUID(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	prev := make(map[string]interface{})
	applied, err := database.Scylla.Query(
		`INSERT INTO carts (user_id, cart_id, created_at) VALUES (?, ?, ?) IF NOT EXISTS`,
		userID, cart.ID, cart.CreatedAt,
	).WithContext(ctx).MapScanCAS(prev)
	if err != nil {
		return nil, fmt.Errorf("création panier: %w", err)
	}
	if applied {
		return &cart, nil
	}

	// Course perdue : la ligne existante fait foi.
	existing, ok := prev["cart_id"].(gocql.UUID)
	if !ok {
		return nil, fmt.Errorf("création panier: ligne existante illisible")
	}
	cart.ID = existing
	if createdAt, ok := prev["created_at"].(time.Time); ok {
		cart.CreatedAt = createdAt
	}
	return &cart, nil
}

func (ScyllaCarts) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	err := database.Scylla.Query(
		`SELECT cart_id, created_at FROM carts WHERE user_id = ?`,
		userID,
	).WithContext(ctx).Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, services.ErrCartNotFound
		}
		return nil, fmt.Errorf("lecture panier: %w", err)
	}
	return &cart, nil
}

// UpsertItem : l'INSERT est un upsert natif last-write-wins, et la clé
// primaire (cart_id, product_id) rend l'unicité par couple mécanique.
func (ScyllaCarts) UpsertItem(ctx context.Context, cartID, productID gocql.UUID, quantity int) error {
	err := database.Scylla.Query(
		`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES (?, ?, ?)`,
		cartID, productID, quantity,
	).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("écriture ligne panier: %w", err)
	}
	return nil
}

func (ScyllaCarts) DeleteItem(ctx context.Context, cartID, productID gocql.UUID) error {
	err := database.Scylla.Query(
		`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`,
		cartID, productID,
	).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("suppression ligne panier: %w", err)
	}
	return nil
}

func (ScyllaCarts) ListItems(ctx context.Context, cartID gocql.UUID) ([]models.CartItem, error) {
	items := []models.CartItem{}
	var item models.CartItem
	iter := database.Scylla.Query(
		`SELECT cart_id, product_id, quantity FROM cart_items WHERE cart_id = ?`,
		cartID,
	).WithContext(ctx).Iter()
	for iter.Scan(&item.CartID, &item.ProductID, &item.Quantity) {
		items = append(items, item)
		item = models.CartItem{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture lignes panier: %w", err)
	}
	return items, nil
}

func (ScyllaCarts) ClearItems(ctx context.Context, cartID gocql.UUID) error {
	err := database.Scylla.Query(
		`DELETE FROM cart_items WHERE cart_id = ?`,
		cartID,
	).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("vidage panier: %w", err)
	}
	return nil
}
