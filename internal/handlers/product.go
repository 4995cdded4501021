package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lavka_back_end/internal/cache"
	"lavka_back_end/internal/models"
	"lavka_back_end/internal/services"
	"lavka_back_end/internal/utils"
)

func productView(c *gin.Context, p *models.Product) gin.H {
	return gin.H{
		"id":             p.ID,
		"name":           p.Name,
		"slug":           p.Slug,
		"subcategory_id": p.SubCategoryID,
		"price":          p.Price,
		"images":         ImageSvc.URLs(c.Request.Context(), p),
	}
}

// GetProducts liste les produits avec la carte d'images
// {original, small, medium, large} — chaque entrée peut être null.
func GetProducts(c *gin.Context) {
	ctx := c.Request.Context()
	page, size := pagination(c, 2, 40)

	cacheKey := fmt.Sprintf("products:page:%d:size:%d", page, size)
	var cached pageEnvelope
	if cache.GetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, total, err := Catalog.ListProducts(ctx, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	views := make([]gin.H, 0, len(products))
	for i := range products {
		views = append(views, productView(c, &products[i]))
	}

	payload := pageEnvelope{Count: total, Page: page, PageSize: size, Results: views}
	cache.SetJSON(ctx, cacheKey, payload, cache.PageCacheTTL)

	c.JSON(http.StatusOK, payload)
}

// CreateProduct crée un produit. Le slug est dérivé explicitement avant
// persistance quand il est absent, et réservé par transaction légère pour
// garantir son unicité globale ; il n'est jamais régénéré ensuite.
func CreateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	var input struct {
		Name          string `json:"name" binding:"required"`
		Slug          string `json:"slug"`
		SubCategoryID string `json:"subcategory_id" binding:"required"`
		Price         string `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	subID, err := uuid.Parse(input.SubCategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de sous-catégorie invalide"})
		return
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil || price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
		return
	}
	if price.Exponent() < -2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix est limité à 2 décimales"})
		return
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.DeriveSlug(input.Name)
	}
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de dériver un slug depuis le nom"})
		return
	}

	now := time.Now()
	p := models.Product{
		ID:            gocql.TimeUUID(),
		Name:          input.Name,
		Slug:          slug,
		SubCategoryID: gocql.UUID(subID),
		Price:         price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	reserved, err := Catalog.ReserveSlug(ctx, slug, p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur réservation slug"})
		return
	}
	if !reserved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ce slug est déjà utilisé"})
		return
	}

	if err := Catalog.InsertProduct(ctx, &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	// Indexation Elasticsearch en arrière-plan
	go services.IndexProduct(p)

	cache.InvalidatePattern(ctx, "products:page:*")

	c.JSON(http.StatusOK, productView(c, &p))
}

// SearchProducts cherche dans l'index Elasticsearch.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	results, err := services.SearchProducts(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
