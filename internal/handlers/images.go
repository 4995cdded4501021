package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"lavka_back_end/internal/cache"
	"lavka_back_end/internal/services"
)

// GetProductImage sert les octets d'une variante dérivée
// (génération paresseuse, cache adressé par contenu).
func GetProductImage(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}
	variant := c.Param("variant")

	product, err := Products.FindProductByID(ctx, gocql.UUID(productID))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	data, err := ImageSvc.Resolve(ctx, product, variant)
	switch {
	case errors.Is(err, services.ErrUnknownVariant):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Variante inconnue (small, medium ou large)"})
		return
	case errors.Is(err, services.ErrSourceMissing):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ce produit n'a pas d'image source"})
		return
	case errors.Is(err, services.ErrTransform):
		// Réessayable : rien n'a été mis en cache.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur traitement image, veuillez réessayer"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture image"})
		return
	}

	c.Data(http.StatusOK, "image/jpeg", data)
}

// UploadProductImage téléverse (ou remplace) l'image source d'un produit.
// Le remplacement invalide implicitement toutes les variantes dérivées.
func UploadProductImage(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}
	id := gocql.UUID(productID)

	product, err := Products.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ouverture fichier"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture fichier"})
		return
	}

	key, err := ImageSvc.ReplaceSource(ctx, id, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur téléversement image"})
		return
	}

	if err := Catalog.SetProductImageKey(ctx, id, key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProduct(ctx, id)
	cache.InvalidatePattern(ctx, "products:page:*")

	product.ImageKey = key
	c.JSON(http.StatusOK, gin.H{
		"message": "Image téléversée avec succès",
		"images":  ImageSvc.URLs(ctx, product),
	})
}
