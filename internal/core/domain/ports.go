package domain

import (
	"context"
	"io"
)

// Transactor runs fn as one atomic unit of work. Repositories called with the
// ctx handed to fn take part in the transaction; if fn returns an error
// nothing it wrote is kept.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BlobStore is the external image store. Delete must succeed when the asset
// is already gone.
type BlobStore interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
	Delete(ctx context.Context, publicIDOrURL string) error
}
