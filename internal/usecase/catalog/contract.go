package catalog

import domcat "github.com/kailas-cloud/sigimsae/internal/domain/catalog"

// Loader reads a full catalog snapshot from its source.
type Loader interface {
	Load() (*domcat.Catalog, error)
}
