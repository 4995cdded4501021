package services

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"lavka_back_end/internal/models"
)

// UpsertOutcome distingue les deux issues d'un Upsert réussi.
type UpsertOutcome int

const (
	OutcomeUpserted UpsertOutcome = iota
	OutcomeRemoved
)

// UpsertResult porte le produit concerné pour la composition des messages.
type UpsertResult struct {
	Outcome UpsertOutcome
	Product *models.Product
}

// LineItem est une ligne de panier enrichie pour l'affichage.
type LineItem struct {
	Product   *models.Product
	Quantity  int
	LineTotal decimal.Decimal
}

// CartService est le moteur d'agrégation du panier : il possède la relation
// (utilisateur, produit) → quantité et ses invariants. La machine à états
// par couple (panier, produit) n'a que deux états : absent, ou présent avec
// quantité > 0.
type CartService struct {
	Carts    CartStore
	Products ProductFinder
}

// GetOrCreate retourne le panier de l'utilisateur, en le créant au premier
// accès. La course création/création est réglée par le store (LWT).
func (s *CartService) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	return s.Carts.GetOrCreateCart(ctx, userID)
}

// Get retourne le panier existant, ou ErrCartNotFound.
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	return s.Carts.GetCart(ctx, userID)
}

// Upsert applique la transition d'état pour (panier, produit) :
//   - quantity < 0  → ErrInvalidQuantity ;
//   - quantity == 0 → supprime la ligne si présente (no-op sinon) ;
//   - quantity > 0  → crée ou écrase la ligne (last-write-wins, jamais
//     d'incrément : poster deux fois quantity=3 laisse 3, pas 6).
//
// Tout ou rien : soit la transition s'applique entièrement, soit rien.
func (s *CartService) Upsert(ctx context.Context, cart *models.Cart, productID gocql.UUID, quantity int) (UpsertResult, error) {
	if quantity < 0 {
		return UpsertResult{}, ErrInvalidQuantity
	}

	product, err := s.Products.FindProductByID(ctx, productID)
	if err != nil {
		return UpsertResult{}, err
	}

	if quantity == 0 {
		if err := s.Carts.DeleteItem(ctx, cart.ID, productID); err != nil {
			return UpsertResult{}, fmt.Errorf("suppression ligne panier: %w", err)
		}
		return UpsertResult{Outcome: OutcomeRemoved, Product: product}, nil
	}

	if err := s.Carts.UpsertItem(ctx, cart.ID, productID, quantity); err != nil {
		return UpsertResult{}, fmt.Errorf("écriture ligne panier: %w", err)
	}
	return UpsertResult{Outcome: OutcomeUpserted, Product: product}, nil
}

// Clear supprime toutes les lignes du panier ; la ligne Cart elle-même
// reste. Idempotent : vider un panier déjà vide réussit trivialement.
func (s *CartService) Clear(ctx context.Context, cart *models.Cart) error {
	return s.Carts.ClearItems(ctx, cart.ID)
}

// Items retourne les lignes du panier avec leur sous-total exact.
func (s *CartService) Items(ctx context.Context, cart *models.Cart) ([]LineItem, error) {
	rows, err := s.Carts.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("lecture lignes panier: %w", err)
	}

	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		product, err := s.Products.FindProductByID(ctx, row.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, LineItem{
			Product:   product,
			Quantity:  row.Quantity,
			LineTotal: product.Price.Mul(decimal.NewFromInt(int64(row.Quantity))),
		})
	}
	return items, nil
}

// TotalQuantity est la somme des quantités ; 0 pour un panier vide.
func (s *CartService) TotalQuantity(ctx context.Context, cart *models.Cart) (int, error) {
	rows, err := s.Carts.ListItems(ctx, cart.ID)
	if err != nil {
		return 0, fmt.Errorf("lecture lignes panier: %w", err)
	}
	total := 0
	for _, row := range rows {
		total += row.Quantity
	}
	return total, nil
}

// TotalPrice est la somme des quantité × prix en arithmétique décimale
// exacte ; 0 pour un panier vide.
func (s *CartService) TotalPrice(ctx context.Context, cart *models.Cart) (decimal.Decimal, error) {
	items, err := s.Items(ctx, cart)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total, nil
}
