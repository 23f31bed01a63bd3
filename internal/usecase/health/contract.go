package health

import (
	"context"

	domcat "github.com/kailas-cloud/sigimsae/internal/domain/catalog"
)

// DBPinger checks history store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker exposes the loaded catalog snapshot.
type CatalogChecker interface {
	Snapshot() (*domcat.Catalog, error)
}
