// Package backend opens the storage implementation selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/hongminglow/drug-catalog-be/internal/config"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
	"github.com/hongminglow/drug-catalog-be/internal/storage/memory"
	"github.com/hongminglow/drug-catalog-be/internal/storage/mongodb"
	"github.com/hongminglow/drug-catalog-be/internal/storage/postgres"
)

// Open returns a ready store for cfg.StoreDriver. Callers own Close.
func Open(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverMongo:
		store, err := mongodb.NewStore(ctx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
