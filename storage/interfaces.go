package storage

import (
	"context"

	"github.com/tobgu/qframe"

	"house-prices/models"
)

// ListingSource is the interface any dataset backend must satisfy.
// Load returns a frame laid out as models.FrameColumns.
type ListingSource interface {
	Load(ctx context.Context) (qframe.QFrame, error)
}

// ListingImporter is the interface for backends that can be populated from
// another source.
type ListingImporter interface {
	Import(ctx context.Context, listings []models.Listing) error
	Close() error
}
