package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka_back_end/internal/cache"
)

// GetCategories liste les catégories avec leurs sous-catégories imbriquées.
func GetCategories(c *gin.Context) {
	ctx := c.Request.Context()
	page, size := pagination(c, 3, 50)

	cacheKey := fmt.Sprintf("categories:page:%d:size:%d", page, size)
	var cached pageEnvelope
	if cache.GetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	categories, total, err := Catalog.ListCategories(ctx, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	payload := pageEnvelope{Count: total, Page: page, PageSize: size, Results: categories}
	cache.SetJSON(ctx, cacheKey, payload, cache.PageCacheTTL)

	c.JSON(http.StatusOK, payload)
}
