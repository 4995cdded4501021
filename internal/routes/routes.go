package routes

import (
	"github.com/gin-gonic/gin"

	"lavka_back_end/internal/handlers"
	"lavka_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/shop")

	// Catalogue (public)
	api.GET("/categories", handlers.GetCategories)
	api.GET("/products", handlers.GetProducts)
	api.GET("/products/search", handlers.SearchProducts)
	api.GET("/products/:id/images/:variant", handlers.GetProductImage)

	// Écritures catalogue
	api.POST("/products", middleware.AuthRequired(), handlers.CreateProduct)
	api.POST("/products/:id/image", middleware.AuthRequired(), handlers.UploadProductImage)

	// Panier (authentifié)
	cart := api.Group("/cart", middleware.AuthRequired())
	cart.GET("", handlers.GetCart)
	cart.POST("", handlers.PostCart)
	cart.DELETE("", handlers.ClearCart)

	api.POST("/checkout", middleware.AuthRequired(), handlers.Checkout)
}
