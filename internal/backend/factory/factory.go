// Package factory builds concrete backend adapters from configuration.
package factory

import (
	"context"
	"fmt"

	"github.com/mpavkov/search-refinery/internal/backend"
	"github.com/mpavkov/search-refinery/internal/backend/es"
	"github.com/mpavkov/search-refinery/internal/backend/pg"
	"github.com/mpavkov/search-refinery/internal/backend/rest"
)

type Type string

const (
	REST Type = "rest"
	ES   Type = "es"
	PG   Type = "pg"
)

type BackendConfig struct {
	Type
	Rest *rest.Config
	Es   *es.ClientConfig
	Pg   *pg.PoolConfig
}

// NewSearcher creates the configured backend adapter.
func NewSearcher(ctx context.Context, cfg BackendConfig) (backend.Searcher, error) {
	switch cfg.Type {
	case REST:
		if cfg.Rest == nil {
			return nil, fmt.Errorf("missing rest backend configuration")
		}
		return rest.NewClient(*cfg.Rest)

	case ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing elasticsearch backend configuration")
		}
		return es.NewSearcher(*cfg.Es)

	case PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing postgres backend configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewSearcher(pool, pg.SearcherConfig{}), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

// NewIconResolver returns the icon resolver matching the searcher: the REST
// client resolves icons through its batch endpoint, everything else falls
// back to the static extension mapping.
func NewIconResolver(searcher backend.Searcher) backend.IconResolver {
	if resolver, ok := searcher.(backend.IconResolver); ok {
		return resolver
	}
	return backend.NewStaticIconResolver("")
}
