package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// TransformTimeout retourne la durée maximale d'une transformation d'image
// (IMAGE_TRANSFORM_TIMEOUT, ex: "10s"). Au-delà, l'appel échoue en erreur
// de transformation.
func TransformTimeout() time.Duration {
	raw := os.Getenv("IMAGE_TRANSFORM_TIMEOUT")
	if raw == "" {
		return 10 * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("⚠️ IMAGE_TRANSFORM_TIMEOUT invalide (%q), valeur par défaut 10s", raw)
		return 10 * time.Second
	}
	return d
}
