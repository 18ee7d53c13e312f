package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigOrDefault(t *testing.T) {
	var nilCfg *Config
	assert.Equal(t, DefaultConfig(), nilCfg.OrDefault())

	c := (&Config{}).OrDefault()
	assert.Equal(t, 2, c.SplitThreshold)
	assert.Equal(t, 24, c.MaxDepth)
	assert.Equal(t, StorageArena, c.Storage)

	c = (&Config{SplitThreshold: 7, MaxDepth: 3, Storage: StorageRecursive}).OrDefault()
	assert.Equal(t, 7, c.SplitThreshold)
	assert.Equal(t, 3, c.MaxDepth)
	assert.Equal(t, StorageRecursive, c.Storage)
}

func TestConfigValidate(t *testing.T) {
	var nilCfg *Config
	require.NoError(t, nilCfg.Validate())
	require.NoError(t, (&Config{}).Validate())
	require.NoError(t, DefaultConfig().Validate())

	bad := []Config{
		{SplitThreshold: -1},
		{MaxDepth: -1},
		{MaxDepth: 65},
		{MinCellSize: -0.5},
		{Storage: "btree"},
		{ParallelWorkers: -2},
	}
	for _, c := range bad {
		assert.ErrorIs(t, c.Validate(), ErrInvalidConfig, "%+v", c)
	}
}

func TestNewTreeDoesNotAliasConfig(t *testing.T) {
	cfg := &Config{SplitThreshold: 3}
	tree := newTestTree(t, 1, cfg)
	cfg.SplitThreshold = 50
	assert.Equal(t, 3, tree.Config().SplitThreshold)
}
