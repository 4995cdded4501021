package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageEnvelope est l'enveloppe de pagination commune aux listes.
type pageEnvelope struct {
	Count    int         `json:"count"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Results  interface{} `json:"results"`
}

// pagination lit ?page= et ?page_size= avec défaut et plafond propres à
// chaque liste (catégories: 3/50, produits: 2/40).
func pagination(c *gin.Context, defaultSize, maxSize int) (int, int) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	size := defaultSize
	if raw := c.Query("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			size = v
			if size > maxSize {
				size = maxSize
			}
		}
	}
	return page, size
}
