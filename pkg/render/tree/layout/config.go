package layout

// Default geometry in layout units (SVG user units).
const (
	DefaultCardWidth   = 160.0
	DefaultCardHeight  = 64.0
	DefaultSpouseGap   = 24.0
	DefaultSiblingGap  = 32.0
	DefaultClusterGap  = 64.0
	DefaultRankGap     = 40.0
	DefaultMinGap      = 16.0
	DefaultPadding     = 40.0
	DefaultTrunkLength = 20.0
	DefaultMaxDrop     = 24.0
)

// Config holds the fixed geometry of a layout pass. Zero-valued fields are
// replaced by their defaults in [Build].
type Config struct {
	CardWidth  float64 `toml:"card_width" json:"card_width"`
	CardHeight float64 `toml:"card_height" json:"card_height"`
	SpouseGap  float64 `toml:"spouse_gap" json:"spouse_gap"`   // between co-parents
	SiblingGap float64 `toml:"sibling_gap" json:"sibling_gap"` // between sibling subtrees
	ClusterGap float64 `toml:"cluster_gap" json:"cluster_gap"` // between root families and between one person's unions
	RankGap    float64 `toml:"rank_gap" json:"rank_gap"`
	MinGap     float64 `toml:"min_gap" json:"min_gap"` // enforced between cards on one rank
	Padding    float64 `toml:"padding" json:"padding"`

	// Edge routing
	TrunkLength float64 `toml:"trunk_length" json:"trunk_length"`
	MaxDrop     float64 `toml:"max_drop" json:"max_drop"`
	Curved      bool    `toml:"curved" json:"curved,omitempty"`

	// StrictRoots keeps every parentless person at rank 0 instead of moving
	// married-in partners onto their spouse's row.
	StrictRoots bool `toml:"strict_roots" json:"strict_roots,omitempty"`
}

// DefaultConfig returns the default geometry.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy with every non-positive dimension replaced by
// its default.
func (c Config) WithDefaults() Config {
	set := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	set(&c.CardWidth, DefaultCardWidth)
	set(&c.CardHeight, DefaultCardHeight)
	set(&c.SpouseGap, DefaultSpouseGap)
	set(&c.SiblingGap, DefaultSiblingGap)
	set(&c.ClusterGap, DefaultClusterGap)
	set(&c.RankGap, DefaultRankGap)
	set(&c.MinGap, DefaultMinGap)
	set(&c.Padding, DefaultPadding)
	set(&c.TrunkLength, DefaultTrunkLength)
	set(&c.MaxDrop, DefaultMaxDrop)
	return c
}

// RankY returns the vertical center of a rank.
func (c Config) RankY(rank int) float64 {
	return c.Padding + float64(rank)*(c.CardHeight+c.RankGap) + c.CardHeight/2
}

// spouseStep is the center-to-center distance between co-parents.
func (c Config) spouseStep() float64 { return c.CardWidth + c.SpouseGap }

// minSeparation is the smallest center distance between cards on one rank.
func (c Config) minSeparation() float64 { return c.CardWidth + c.MinGap }
