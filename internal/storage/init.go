package storage

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Collection document names.
const (
	TasksCollection    = "tasks"
	CartCollection     = "cart"
	ProductsCollection = "products"
)

// InitCollections creates every missing document as an empty array.
func InitCollections(ctx context.Context, b Backend, names ...string) error {
	for _, name := range names {
		created, err := b.Ensure(ctx, name)
		if err != nil {
			return err
		}
		if created {
			log.Info().Str("collection", name).Msg("created missing collection")
		}
	}
	return nil
}

// Seed creates the document name with data when it does not exist yet.
// Existing documents are left untouched.
func Seed(ctx context.Context, b Backend, name string, data []byte) (bool, error) {
	created, err := b.Ensure(ctx, name)
	if err != nil || !created {
		return false, err
	}
	if err := b.Save(ctx, name, data); err != nil {
		return false, &PersistenceError{Collection: name, Err: err}
	}
	log.Info().Str("collection", name).Msg("seeded collection")
	return true, nil
}
