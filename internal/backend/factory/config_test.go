package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_MissingBackend(t *testing.T) {
	t.Setenv("SEARCH_BACKEND", "")

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestLoadEnv_InvalidBackend(t *testing.T) {
	t.Setenv("SEARCH_BACKEND", "mongodb")

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestLoadEnv_Rest(t *testing.T) {
	t.Setenv("SEARCH_BACKEND", "rest")
	t.Setenv("SEARCH_REST_BASE_URL", "https://search.example.com")

	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, REST, cfg.Type)
	require.NotNil(t, cfg.Rest)
	assert.Equal(t, "https://search.example.com", cfg.Rest.BaseURL)
}

func TestLoadEnv_ES(t *testing.T) {
	t.Setenv("SEARCH_BACKEND", "es")
	t.Setenv("ES_ADDRESSES", "http://localhost:9200, http://localhost:9201 ,")
	t.Setenv("ES_INDEX_NAME", "documents")

	cfg, err := LoadEnv()
	require.NoError(t, err)

	require.NotNil(t, cfg.Es)
	assert.Equal(t, []string{"http://localhost:9200", "http://localhost:9201"}, cfg.Es.Addresses)
	assert.Equal(t, "documents", cfg.Es.IndexName)
}

func TestLoadEnv_ESRequiresAddresses(t *testing.T) {
	t.Setenv("SEARCH_BACKEND", "es")
	t.Setenv("ES_ADDRESSES", "")
	t.Setenv("ES_INDEX_NAME", "documents")

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestLoadEnv_ESBlankAddressesRejected(t *testing.T) {
	t.Setenv("SEARCH_BACKEND", "es")
	t.Setenv("ES_ADDRESSES", " , ,")
	t.Setenv("ES_INDEX_NAME", "documents")

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestLoadEnv_PGRequiresConnectionString(t *testing.T) {
	t.Setenv("SEARCH_BACKEND", "pg")
	t.Setenv("PG_CONNECTION_STRING", "")

	_, err := LoadEnv()
	assert.Error(t, err)
}
