package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"golang.org/x/sync/singleflight"

	"lavka_back_end/internal/models"
)

const presignExpiry = 24 * time.Hour

// ImageService est le pipeline de dérivation d'images : à partir d'une
// image source et d'un nom de variante, il produit, met en cache et sert
// l'artefact transformé. Les artefacts sont adressés par contenu
// (ETag de la source) : remplacer la source invalide implicitement toutes
// les variantes, régénérées paresseusement au prochain accès.
type ImageService struct {
	Blobs     BlobStore
	Transform TransformFunc
	Timeout   time.Duration

	group singleflight.Group
}

func NewImageService(blobs BlobStore, timeout time.Duration) *ImageService {
	return &ImageService{
		Blobs:     blobs,
		Transform: RenderVariant,
		Timeout:   timeout,
	}
}

// SourceKey est la clé de l'image source d'un produit.
func SourceKey(productID gocql.UUID) string {
	return fmt.Sprintf("products/%s/original", productID)
}

func artifactKey(productID gocql.UUID, variant, etag string) string {
	return fmt.Sprintf("products/%s/%s/%s.jpg", productID, variant, etag)
}

// Resolve retourne les octets de la variante demandée. Premier appel pour
// un couple (source, variante) : transformation puis mise en cache ;
// appels suivants : octets du cache sans retransformer. Les appels
// concurrents pour la même clé sont regroupés en une seule transformation.
func (s *ImageService) Resolve(ctx context.Context, product *models.Product, variant string) ([]byte, error) {
	spec, err := VariantSpecFor(variant)
	if err != nil {
		return nil, err
	}
	if !product.HasImage() {
		return nil, ErrSourceMissing
	}

	etag, err := s.Blobs.Stat(ctx, product.ImageKey)
	if err != nil {
		if errors.Is(err, ErrObjectMissing) {
			return nil, ErrSourceMissing
		}
		return nil, fmt.Errorf("stat image source: %w", err)
	}

	key := artifactKey(product.ID, variant, etag)
	if data, err := s.Blobs.Get(ctx, key); err == nil {
		return data, nil
	} else if !errors.Is(err, ErrObjectMissing) {
		return nil, fmt.Errorf("lecture artefact: %w", err)
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.generate(ctx, product.ImageKey, key, spec)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// generate transforme la source et stocke l'artefact. Un échec de
// transformation ne stocke rien : le cache n'est jamais empoisonné par un
// artefact partiel ou corrompu.
func (s *ImageService) generate(ctx context.Context, sourceKey, key string, spec VariantSpec) ([]byte, error) {
	src, err := s.Blobs.Get(ctx, sourceKey)
	if err != nil {
		if errors.Is(err, ErrObjectMissing) {
			return nil, ErrSourceMissing
		}
		return nil, fmt.Errorf("lecture image source: %w", err)
	}

	tctx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	out, err := s.Transform(tctx, src, spec)
	if err != nil {
		if errors.Is(err, ErrTransform) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrTransform, err)
	}

	if err := s.Blobs.Put(ctx, key, out, "image/jpeg"); err != nil {
		return nil, fmt.Errorf("écriture artefact: %w", err)
	}
	return out, nil
}

// ReplaceSource téléverse (ou remplace) l'image source du produit. Aucune
// purge explicite : le nouvel ETag rend les anciens artefacts inaccessibles.
func (s *ImageService) ReplaceSource(ctx context.Context, productID gocql.UUID, data []byte, contentType string) (string, error) {
	key := SourceKey(productID)
	if err := s.Blobs.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("téléversement image source: %w", err)
	}
	return key, nil
}

// URLs construit la carte {original, small, medium, large} → URL-ou-null
// pour un produit : original dès qu'une source existe, chaque variante
// seulement une fois son artefact résolu (résolution paresseuse).
func (s *ImageService) URLs(ctx context.Context, product *models.Product) map[string]*string {
	urls := map[string]*string{
		"original": nil,
		"small":    nil,
		"medium":   nil,
		"large":    nil,
	}
	if !product.HasImage() {
		return urls
	}

	etag, err := s.Blobs.Stat(ctx, product.ImageKey)
	if err != nil {
		return urls
	}
	if u, err := s.Blobs.PresignURL(ctx, product.ImageKey, presignExpiry); err == nil {
		urls["original"] = &u
	}

	for _, variant := range VariantNames {
		key := artifactKey(product.ID, variant, etag)
		if _, err := s.Blobs.Stat(ctx, key); err != nil {
			continue
		}
		if u, err := s.Blobs.PresignURL(ctx, key, presignExpiry); err == nil {
			u := u
			urls[variant] = &u
		}
	}
	return urls
}
