package utils

import (
	"github.com/gosimple/slug"
)

// DeriveSlug dérive un slug à partir du nom. Fonction pure : elle est
// appelée explicitement par le chemin d'écriture avant persistance, jamais
// déclenchée implicitement par une sauvegarde — un slug déjà présent n'est
// pas régénéré.
func DeriveSlug(name string) string {
	return slug.Make(name)
}
