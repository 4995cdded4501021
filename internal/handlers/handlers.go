// Package handlers contient la surface HTTP : parsing des requêtes, appel
// du cœur métier, sérialisation des réponses.
package handlers

import (
	"lavka_back_end/internal/services"
)

var (
	Catalog  services.CatalogStore
	Products services.ProductFinder
	CartSvc  *services.CartService
	ImageSvc *services.ImageService
)

// Setup câble les dépendances des handlers (appelé une fois au démarrage,
// remplaçable par des fakes en test).
func Setup(catalog services.CatalogStore, products services.ProductFinder, cartSvc *services.CartService, imageSvc *services.ImageService) {
	Catalog = catalog
	Products = products
	CartSvc = cartSvc
	ImageSvc = imageSvc
}
