package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Cart est le panier d'un utilisateur : exactement un par user_id, créé
// paresseusement au premier accès.
type Cart struct {
	ID        gocql.UUID `json:"id"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
}

// CartItem lie un produit à un panier. La clé primaire (cart_id, product_id)
// garantit au plus une ligne par couple (panier, produit).
type CartItem struct {
	CartID    gocql.UUID `json:"cart_id"`
	ProductID gocql.UUID `json:"product_id"`
	Quantity  int        `json:"quantity"`
}
