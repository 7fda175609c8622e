package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/erauner12/showcase/internal/config"
	"github.com/erauner12/showcase/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogueParses(t *testing.T) {
	var products []model.Product
	require.NoError(t, json.Unmarshal(defaultCatalogue, &products))
	require.NotEmpty(t, products)

	seen := map[string]bool{}
	for _, p := range products {
		assert.NoError(t, p.Validate(), p.ID)
		assert.False(t, seen[p.ID], "duplicate product id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestOpenBackend_DataDir(t *testing.T) {
	dir := t.TempDir()

	backend, closeFn, err := openBackend(context.Background(), config.ServerConfig{DataDir: dir})
	require.NoError(t, err)
	defer closeFn()

	created, err := backend.Ensure(context.Background(), "tasks")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestNewResponder_NoKey(t *testing.T) {
	assert.Nil(t, newResponder(context.Background(), config.ChatConfig{}))
}
