package storage

import "context"

// ImageStorage persists decoded recipe images and yields the public
// path stored on the recipe.
type ImageStorage interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
}
