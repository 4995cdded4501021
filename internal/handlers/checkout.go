package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka_back_end/internal/services"
)

// Checkout crée un PaymentIntent Stripe pour le total exact du panier.
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}
	ctx := c.Request.Context()

	cart, err := CartSvc.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide ou introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur accès panier"})
		return
	}

	total, err := CartSvc.TotalPrice(ctx, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur calcul total"})
		return
	}

	pi, err := services.CreateCartPaymentIntent(userID, total)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création paiement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_secret": pi.ClientSecret,
		"amount":        pi.Amount,
		"currency":      pi.Currency,
	})
}
