package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mpavkov/search-refinery/internal/backend/es"
	"github.com/mpavkov/search-refinery/internal/backend/pg"
	"github.com/mpavkov/search-refinery/internal/backend/rest"
	"github.com/mpavkov/search-refinery/pkg/stringsutil"
)

// LoadEnv reads the backend selection and its settings from the environment.
func LoadEnv() (*BackendConfig, error) {
	backendType := Type(os.Getenv("SEARCH_BACKEND"))
	if backendType == "" {
		slog.Error("SEARCH_BACKEND environment variable is not set")
		return nil, fmt.Errorf("SEARCH_BACKEND environment variable is not set")
	}
	if backendType != REST && backendType != ES && backendType != PG {
		slog.Error("Invalid SEARCH_BACKEND environment variable value", "value", backendType)
		return nil, fmt.Errorf(
			"invalid SEARCH_BACKEND environment variable value: %s, expected one of %v",
			backendType,
			[]Type{REST, ES, PG})
	}

	var restCfg *rest.Config
	if backendType == REST {
		restCfg = &rest.Config{
			BaseURL: os.Getenv("SEARCH_REST_BASE_URL"),
		}
		if restCfg.BaseURL == "" {
			slog.Error("REST backend base URL is not set")
			return nil, fmt.Errorf("SEARCH_REST_BASE_URL is not set")
		}
	}

	var esCfg *es.ClientConfig
	if backendType == ES {
		addresses := strings.Split(os.Getenv("ES_ADDRESSES"), ",")
		for i, address := range addresses {
			addresses[i] = strings.TrimSpace(address)
		}
		esCfg = &es.ClientConfig{
			Addresses:    stringsutil.RemoveEmptyStrings(addresses),
			IndexName:    os.Getenv("ES_INDEX_NAME"),
			Username:     os.Getenv("ES_USERNAME"),
			Password:     os.Getenv("ES_PASSWORD"),
			SuggestField: os.Getenv("ES_SUGGEST_FIELD"),
		}
		if len(esCfg.Addresses) == 0 || esCfg.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses, "indexName", esCfg.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	}

	var pgCfg *pg.PoolConfig
	if backendType == PG {
		pgCfg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	return &BackendConfig{
		Type: backendType,
		Rest: restCfg,
		Es:   esCfg,
		Pg:   pgCfg,
	}, nil
}
