package interfaces

import "context"

// IImageStore hosts product images and returns their public URL.
type IImageStore interface {
	Upload(ctx context.Context, name string, contentType string, body []byte) (string, error)
	Delete(ctx context.Context, url string) error
}
