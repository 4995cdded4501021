package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"lavka_back_end/internal/database"
)

const (
	ProductCacheTTL = 10 * time.Minute
	PageCacheTTL    = time.Hour
)

// GetJSON lit et désérialise une clé du cache. Retourne false sur absence
// ou erreur : le cache n'est jamais bloquant.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	data, err := database.Redis.Get(ctx, key).Result()
	if err != nil || data == "" {
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false
	}
	return true
}

// SetJSON sérialise et stocke une valeur avec TTL.
func SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := database.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("⚠️ Erreur écriture cache %s: %v", key, err)
	}
}

// Invalidate supprime des clés exactes.
func Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	database.Redis.Del(ctx, keys...)
}

// InvalidatePattern supprime toutes les clés correspondant au motif
// (ex: "products:page:*" après une écriture catalogue).
func InvalidatePattern(ctx context.Context, pattern string) {
	keys, err := database.Redis.Keys(ctx, pattern).Result()
	if err != nil {
		log.Printf("⚠️ Erreur invalidation cache %s: %v", pattern, err)
		return
	}
	if len(keys) > 0 {
		database.Redis.Del(ctx, keys...)
	}
}
