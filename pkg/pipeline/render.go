package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/lineagemap/pkg/graph"
	"github.com/matzehuels/lineagemap/pkg/observability"
	"github.com/matzehuels/lineagemap/pkg/render/nodelink"
	"github.com/matzehuels/lineagemap/pkg/render/tree/sink"
	"github.com/matzehuels/lineagemap/pkg/render/tree/styles"
)

// RenderFromLayout generates output artifacts in the requested formats.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = renderSVG(ctx, l, opts)
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			if l.DOT == "" {
				err = fmt.Errorf("layout has no DOT source")
			}
			data = []byte(l.DOT)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(ctx context.Context, l graph.Layout, opts Options) ([]byte, error) {
	if l.IsNodelink() {
		return nodelink.RenderSVG(ctx, l.DOT)
	}
	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.Unions {
		svgOpts = append(svgOpts, sink.WithUnions())
	}
	if opts.PanZoom {
		svgOpts = append(svgOpts, sink.WithPanZoom())
	}
	return sink.RenderLayout(l, svgOpts...)
}
