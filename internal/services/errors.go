package services

import "errors"

// Taxonomie d'erreurs du cœur métier. Toutes sont rattrapées à la frontière
// API et converties en réponses 4xx/5xx — aucune ne fait tomber le process.
var (
	// ErrProductNotFound : le product_id ne correspond à aucun produit.
	ErrProductNotFound = errors.New("produit introuvable")

	// ErrCartNotFound : l'utilisateur n'a aucune ligne de panier.
	ErrCartNotFound = errors.New("panier introuvable")

	// ErrInvalidQuantity : quantité négative ou non entière.
	ErrInvalidQuantity = errors.New("quantité invalide")

	// ErrSourceMissing : le produit n'a pas d'image source.
	ErrSourceMissing = errors.New("image source manquante")

	// ErrUnknownVariant : nom de variante hors de l'ensemble fixe
	// {small, medium, large} — erreur de programmation côté appelant.
	ErrUnknownVariant = errors.New("variante d'image inconnue")

	// ErrTransform : échec de décodage/encodage ou délai dépassé. L'appel
	// est réessayable ; aucun artefact partiel n'est mis en cache.
	ErrTransform = errors.New("échec de transformation d'image")

	// ErrObjectMissing : objet absent du stockage (usage interne au
	// pipeline d'images).
	ErrObjectMissing = errors.New("objet introuvable dans le stockage")
)
