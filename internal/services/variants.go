package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
)

// VariantSpec décrit la recette fixe d'une variante dérivée : un
// redimensionnement, puis contraste ×1.2 / netteté ×1.1, encodage JPEG
// qualité 80. Non configurable par l'utilisateur.
type VariantSpec struct {
	Name   string
	Width  int
	Height int
	// Fill recadre depuis le centre pour remplir exactement la boîte ;
	// sinon l'image est mise à l'échelle pour tenir entièrement dans la
	// boîte en conservant le ratio (agrandie si nécessaire).
	Fill bool
}

var variantSpecs = map[string]VariantSpec{
	"small":  {Name: "small", Width: 50, Height: 50, Fill: true},
	"medium": {Name: "medium", Width: 300, Height: 200},
	"large":  {Name: "large", Width: 640, Height: 480},
}

// VariantNames liste les variantes valides, dans un ordre stable.
var VariantNames = []string{"small", "medium", "large"}

// VariantSpecFor retourne la spec d'une variante, ou ErrUnknownVariant.
func VariantSpecFor(name string) (VariantSpec, error) {
	spec, ok := variantSpecs[name]
	if !ok {
		return VariantSpec{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return spec, nil
}

const jpegQuality = 80

// TransformFunc produit les octets d'une variante à partir des octets
// source. Déterministe : même source + même spec → mêmes octets.
type TransformFunc func(ctx context.Context, src []byte, spec VariantSpec) ([]byte, error)

// RenderVariant est la transformation de production. Les erreurs de codec
// et l'expiration du contexte remontent en ErrTransform.
func RenderVariant(ctx context.Context, src []byte, spec VariantSpec) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: décodage source: %v", ErrTransform, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransform, err)
	}

	if spec.Fill {
		img = imaging.Fill(img, spec.Width, spec.Height, imaging.Center, imaging.Lanczos)
	} else {
		w, h := fitDims(img.Bounds().Dx(), img.Bounds().Dy(), spec.Width, spec.Height)
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransform, err)
	}

	// contraste ×1.2, netteté ×1.1
	img = imaging.AdjustContrast(img, 20)
	img = imaging.Sharpen(img, 0.5)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransform, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("%w: encodage JPEG: %v", ErrTransform, err)
	}
	return buf.Bytes(), nil
}

// fitDims calcule la plus grande taille qui tient entièrement dans la boîte
// en conservant le ratio. L'image peut être agrandie ; un des deux axes
// peut rester sous la boîte.
func fitDims(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	outW := int(float64(w)*scale + 0.5)
	outH := int(float64(h)*scale + 0.5)
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	return outW, outH
}
