package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"lavka_back_end/internal/cache"
	"lavka_back_end/internal/config"
	"lavka_back_end/internal/database"
	"lavka_back_end/internal/handlers"
	"lavka_back_end/internal/routes"
	"lavka_back_end/internal/services"
	"lavka_back_end/internal/store"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY manquant — checkout désactivé")
	} else {
		log.Println("✅ Stripe initialisé")
	}

	database.ConnectDatabases()
	defer database.CloseScylla()

	// Câblage du cœur : stores Scylla, produits derrière le cache Redis,
	// pipeline d'images sur MinIO.
	catalog := store.ScyllaCatalog{}
	products := cache.Products{Fallback: catalog}
	cartSvc := &services.CartService{
		Carts:    store.ScyllaCarts{},
		Products: products,
	}
	imageSvc := services.NewImageService(services.MinioBlobs{}, config.TransformTimeout())
	handlers.Setup(catalog, products, cartSvc, imageSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("FRONT_URL")},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Lavka lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Erreur serveur:", err)
	}
}
