package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/bilgisen/resourcehub/internal/models"
)

// Cache stores normalized resources between requests.
// Get methods return nil with no error on a miss.
type Cache interface {
	GetResource(ctx context.Context, slug string) (*models.Resource, error)
	SetResource(ctx context.Context, r models.Resource, ttl time.Duration) error
	GetList(ctx context.Context, name string) ([]models.Resource, error)
	SetList(ctx context.Context, name string, list []models.Resource, ttl time.Duration) error
	Invalidate(ctx context.Context, slug string) error
	Clear(ctx context.Context) error
	Close() error
}

func resourceKey(slug string) string {
	return "resource:" + slug
}

// listKey hashes the list name so query text can be used as the name and a
// changed query never reads an old list.
func listKey(name string) string {
	sum := sha256.Sum256([]byte(name))
	return "list:" + hex.EncodeToString(sum[:])
}
