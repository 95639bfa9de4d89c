package contracts

import "context"

// ImageStorage is the blob-storage boundary for listing media. Upload
// stores the file and returns the durable public URL to substitute into the
// image slot.
type ImageStorage interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)

	// Remove deletes a previously uploaded blob by its public URL. Unknown
	// URLs (external image links) are ignored.
	Remove(ctx context.Context, url string) error
}
