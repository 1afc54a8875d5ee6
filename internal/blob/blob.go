package blob

import "context"

// Ref identifies a stored object: the public URL served to clients and the
// provider-assigned key used for later deletion.
type Ref struct {
	URL string
	Key string
}

// Store is the external blob-store capability the photo service consumes.
// The engine never talks to the storage provider directly.
type Store interface {
	Save(ctx context.Context, key, contentType string, data []byte) (*Ref, error)
	Delete(ctx context.Context, key string) error
}
