// Package pipeline provides the render pipeline for nnetplot.
//
// This package implements the complete decode → build → draw → render
// pipeline used by the CLI and the HTTP service. By centralizing this logic,
// both entry points share defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: decode the document, validate it, position its layers and draw
//     them into a [scene.Scene]
//  2. Render: generate output in the requested formats (SVG, PNG, PDF, JSON)
//     for the diagram itself or for its node-link topology view
//
// Rendered artifacts are cached under the document's content hash and the
// render options. Build results are not cached; building is cheap.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Document:  data,
//	    DocFormat: diagram.FormatTOML,
//	    Formats:   []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nnetplot/pkg/cache"
	"github.com/matzehuels/nnetplot/pkg/diagram"
	"github.com/matzehuels/nnetplot/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Service
// =============================================================================

// Visualization types.
const (
	VizTypeDiagram  = "diagram"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeDiagram

// DefaultNodelinkZoom is the rsvg-convert zoom used for node-link PNGs.
const DefaultNodelinkZoom = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeDiagram:  true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// Scale, Margin and Background override the document's canvas when set.
type Options struct {
	// Build options
	Document  []byte         `json:"-"`
	DocFormat diagram.Format `json:"doc_format"`
	Source    string         `json:"source,omitempty"` // file name or request ID, for logs

	// Render options
	VizType    string   `json:"viz_type,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Margin     float64  `json:"margin,omitempty"`
	Background string   `json:"background,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // node-link labels with shape and activation
	Refresh    bool     `json:"refresh,omitempty"`  // bypass cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the built diagram with its layers positioned.
	Diagram *diagram.Diagram

	// DocHash is the content hash of the source document.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	diagram.DrawStats
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
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

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: diagram, nodelink)", vizType)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates while keeping order.
func ParseFormats(s string) []string {
	var out []string
	for f := range strings.SplitSeq(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Document) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	if o.DocFormat == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "document format is required")
	}
	if _, err := diagram.ParseFormat(string(o.DocFormat)); err != nil {
		return err
	}
	if o.Scale < 0 || o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale and margin must not be negative")
	}
	if o.Scale > diagram.MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g exceeds the limit of %g", o.Scale, diagram.MaxScale)
	}
	if o.Margin > diagram.MaxMargin {
		return errors.New(errors.ErrCodeInvalidInput, "margin %g exceeds the limit of %g", o.Margin, diagram.MaxMargin)
	}
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsNodelink returns true if this is a node-link visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		VizType:    o.VizType,
		Scale:      o.Scale,
		Margin:     o.Margin,
		Background: o.Background,
		Detailed:   o.Detailed,
	}
}

// canvas resolves the render settings against the document canvas.
func (o *Options) canvas(c diagram.Canvas) diagram.Canvas {
	if o.Scale > 0 {
		c.Scale = o.Scale
	}
	if o.Margin > 0 {
		c.Margin = o.Margin
	}
	if o.Background != "" {
		c.Background = o.Background
	}
	return c
}
