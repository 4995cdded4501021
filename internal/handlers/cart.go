package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lavka_back_end/internal/services"
)

// GetCart retourne le contenu du panier (créé paresseusement au premier
// accès).
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}
	ctx := c.Request.Context()

	cart, err := CartSvc.GetOrCreate(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur accès panier"})
		return
	}

	items, err := CartSvc.Items(ctx, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	views := make([]gin.H, 0, len(items))
	totalQuantity := 0
	totalPrice := decimal.Zero
	for _, item := range items {
		totalQuantity += item.Quantity
		totalPrice = totalPrice.Add(item.LineTotal)
		views = append(views, gin.H{
			"product":    item.Product.Name,
			"quantity":   item.Quantity,
			"line_total": item.LineTotal,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             cart.ID,
		"items":          views,
		"total_quantity": totalQuantity,
		"total_price":    totalPrice,
	})
}

// PostCart ajoute/met à jour un produit dans le panier. Quantité 0 :
// suppression de la ligne ; quantité > 0 : écrasement (jamais d'incrément) ;
// quantité absente : 1 par défaut.
func PostCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}
	ctx := c.Request.Context()

	var input struct {
		ProductID string      `json:"product_id"`
		Quantity  json.Number `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'product_id' est requis."})
		return
	}
	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	quantity := 1
	if input.Quantity != "" {
		n, err := input.Quantity.Int64()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "La quantité doit être un nombre entier."})
			return
		}
		quantity = int(n)
	}

	cart, err := CartSvc.GetOrCreate(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur accès panier"})
		return
	}

	result, err := CartSvc.Upsert(ctx, cart, gocql.UUID(productID), quantity)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produit avec ce product_id introuvable."})
		return
	case errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "La quantité ne peut pas être négative."})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	if result.Outcome == services.OutcomeRemoved {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Produit %s supprimé du panier.", result.Product.Name)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Produit %s ajouté/mis à jour dans le panier.", result.Product.Name)})
}

// ClearCart vide le panier. Succès même déjà vide ; 404 seulement si
// l'utilisateur n'a aucune ligne panier.
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}
	ctx := c.Request.Context()

	cart, err := CartSvc.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Panier introuvable."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur accès panier"})
		return
	}

	if err := CartSvc.Clear(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vidage panier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès."})
}
