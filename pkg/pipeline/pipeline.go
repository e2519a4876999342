// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP API.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Decode: Parse a family document, tolerating alias keys
//  2. Layout: Index the document and compute the render-ready layout
//  3. Render: Produce output formats (SVG, JSON, DOT) from a layout
//
// Each stage can be run on its own. The [Runner] adds caching: layouts are
// keyed by a hash of the document plus the layout options, artifacts by a
// hash of the layout plus the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := pipeline.Decode(data, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg"}})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lineagemap/pkg/cache"
	"github.com/matzehuels/lineagemap/pkg/errors"
	"github.com/matzehuels/lineagemap/pkg/graph"
	"github.com/matzehuels/lineagemap/pkg/render/tree/layout"
	"github.com/matzehuels/lineagemap/pkg/render/tree/styles"
	"github.com/matzehuels/lineagemap/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultVizType is the default visualization type.
const DefaultVizType = graph.VizTypeTree

// DefaultStyle is the default visual style.
const DefaultStyle = graph.StyleSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	graph.VizTypeTree:     true,
	graph.VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Family names the document in logs and exported layouts.
	Family string `json:"family,omitempty"`

	// Layout options
	VizType string        `json:"viz_type,omitempty"`
	Layout  layout.Config `json:"layout"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Unions  bool     `json:"unions,omitempty"`   // draw union dots
	PanZoom bool     `json:"pan_zoom,omitempty"` // embed the pan/zoom script

	// Refresh bypasses cached layouts and artifacts (results are still stored).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the indexed family. It is nil when the layout came from the
	// cache.
	Graph *tree.Graph

	// DocHash is the content hash of the normalized document.
	DocHash string

	// Layout is the render-ready layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Persons    int
	Unions     int
	Ranks      int
	Collisions int
	Crossings  int
	Warnings   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is registered.
func ValidateStyle(style string) error {
	if _, err := styles.Lookup(style); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid style")
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid viz_type: %q (must be one of: tree, nodelink)", vizType)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults validates and applies defaults for the full pipeline.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	o.Layout = o.Layout.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateVizType(o.VizType)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsTree returns true if this is a family-tree visualization.
func (o *Options) IsTree() bool {
	return o.VizType == "" || o.VizType == graph.VizTypeTree
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	c := o.Layout
	return cache.LayoutKeyOpts{
		VizType:     o.VizType,
		CardWidth:   c.CardWidth,
		CardHeight:  c.CardHeight,
		SpouseGap:   c.SpouseGap,
		SiblingGap:  c.SiblingGap,
		ClusterGap:  c.ClusterGap,
		RankGap:     c.RankGap,
		MinGap:      c.MinGap,
		Padding:     c.Padding,
		TrunkLength: c.TrunkLength,
		MaxDrop:     c.MaxDrop,
		Curved:      c.Curved,
		StrictRoots: c.StrictRoots,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Style:   o.Style,
		Unions:  o.Unions,
		PanZoom: o.PanZoom,
	}
}
