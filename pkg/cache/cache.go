package cache

import (
	"context"
	"fmt"
	"time"
)

// Default lifetimes per entry kind. Layouts and artifacts are keyed by
// content hashes, so they only expire to bound disk and memory use.
const (
	TTLDocument = 5 * time.Minute
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts holds the inputs besides the document that change a layout.
type LayoutKeyOpts struct {
	VizType     string  `json:"viz_type"`
	CardWidth   float64 `json:"card_width"`
	CardHeight  float64 `json:"card_height"`
	SpouseGap   float64 `json:"spouse_gap"`
	SiblingGap  float64 `json:"sibling_gap"`
	ClusterGap  float64 `json:"cluster_gap"`
	RankGap     float64 `json:"rank_gap"`
	MinGap      float64 `json:"min_gap"`
	Padding     float64 `json:"padding"`
	TrunkLength float64 `json:"trunk_length"`
	MaxDrop     float64 `json:"max_drop"`
	Curved      bool    `json:"curved"`
	StrictRoots bool    `json:"strict_roots"`
}

// ArtifactKeyOpts holds the inputs besides the layout that change an
// artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Style   string `json:"style"`
	Unions  bool   `json:"unions"`
	PanZoom bool   `json:"pan_zoom"`
}

// Keyer builds cache keys. Swapping the Keyer (see [ScopedKeyer]) changes
// the namespace without touching callers.
type Keyer interface {
	// DocumentKey addresses a stored family document.
	DocumentKey(store, name string) string
	// LayoutKey addresses a layout computed from a document hash.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// ArtifactKey addresses a rendered output of a layout hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "kind:…".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey returns "doc:<store>:<name>".
func (DefaultKeyer) DocumentKey(store, name string) string {
	return fmt.Sprintf("doc:%s:%s", store, name)
}

// LayoutKey hashes the document hash together with the layout options.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey hashes the layout hash together with the render options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
