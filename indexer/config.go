package indexer

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// StorageKind selects the node storage strategy.
type StorageKind string

const (
	// StorageArena keeps all nodes in one flat slice; children occupy four
	// consecutive slots addressed by a base index.
	StorageArena StorageKind = "arena"
	// StorageRecursive gives every node its own array of four child pointers.
	StorageRecursive StorageKind = "recursive"
)

// ErrInvalidConfig is returned by Validate for out-of-range parameters.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds tree parameters.
type Config struct {
	SplitThreshold  int         `yaml:"split_threshold" validate:"gte=0"`                   // K: points in a quadrant that trigger a child, default 2
	MaxDepth        int         `yaml:"max_depth" validate:"gte=0,lte=64"`                  // deepest node depth (root is 0), default 24
	MinCellSize     float64     `yaml:"min_cell_size" validate:"gte=0"`                     // children narrower than this are never created, default 0
	Storage         StorageKind `yaml:"storage" validate:"omitempty,oneof=arena recursive"` // node storage, default arena
	ParallelWorkers int         `yaml:"parallel_workers" validate:"gte=0"`                  // goroutine cap for RebuildParallel, 0 means one per quadrant
}

var configValidate = validator.New()

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SplitThreshold: 2,
		MaxDepth:       24,
		MinCellSize:    0,
		Storage:        StorageArena,
	}
}

// OrDefault returns DefaultConfig if c is nil, otherwise normalizes c.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	if c.SplitThreshold <= 0 {
		c.SplitThreshold = 2
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 24
	}
	if c.MinCellSize < 0 {
		c.MinCellSize = 0
	}
	if c.Storage == "" {
		c.Storage = StorageArena
	}
	if c.ParallelWorkers < 0 {
		c.ParallelWorkers = 0
	}
	return c
}

// Validate rejects negative or unknown values. Zero values are accepted and
// mean "use the default".
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
