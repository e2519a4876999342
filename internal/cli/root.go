package cli

import (
	"context"
	"errors"

	"github.com/matzehuels/lineagemap/pkg/family"
	"github.com/matzehuels/lineagemap/pkg/pipeline"
	"github.com/matzehuels/lineagemap/pkg/store"
)

// =============================================================================
// Input Loading
// =============================================================================

// familyInput names where a command reads its family document from: a file
// path or a built-in sample id.
type familyInput struct {
	path   string
	sample string
}

var errNoInput = errors.New("a family file or --sample is required")

// name returns the family name used in logs and output paths.
func (in familyInput) name() string {
	if in.sample != "" {
		return store.Resolve(in.sample)
	}
	return baseName(in.path)
}

// load reads and decodes the family document.
func (c *CLI) load(ctx context.Context, in familyInput) (*family.Document, error) {
	switch {
	case in.sample != "":
		cfg, err := c.config()
		if err != nil {
			return nil, err
		}
		return newSamples(cfg).Get(ctx, in.sample)
	case in.path != "":
		data, err := readInput(in.path)
		if err != nil {
			return nil, err
		}
		return pipeline.Decode(data, c.Logger)
	}
	return nil, errNoInput
}
