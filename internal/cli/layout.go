package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nnetplot/pkg/diagram"
	"github.com/matzehuels/nnetplot/pkg/geom"
	"github.com/matzehuels/nnetplot/pkg/render/scene"
	"github.com/matzehuels/nnetplot/pkg/render/sink"
)

// layoutCommand creates the layout command for inspecting positioned layers.
func (c *CLI) layoutCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "layout [diagram.toml|yaml|json]",
		Short: "Show layer positions after alignment",
		Long: `Show layer positions after alignment.

The layout command builds the diagram without rendering it and prints every
layer's anchor, rectangle and node count, which helps when tuning alignment
ratios and spacings. Use --json for machine-readable output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], asJSON, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print layers as JSON")

	return cmd
}

// layoutReport is the --json output of the layout command.
type layoutReport struct {
	Title  string            `json:"title,omitempty"`
	Bounds *geom.Bounds      `json:"bounds,omitempty"`
	Stats  diagram.DrawStats `json:"stats"`
	Layers []sink.LayerInfo  `json:"layers"`
}

// runLayout builds the diagram and prints its layers.
func (c *CLI) runLayout(ctx context.Context, input string, asJSON bool, w io.Writer) error {
	logger := loggerFromContext(ctx)

	doc, err := diagram.Load(input)
	if err != nil {
		return err
	}
	d, err := diagram.Build(doc)
	if err != nil {
		return err
	}
	for _, warn := range d.Warnings {
		logger.Warn(warn)
	}

	sc := scene.New()
	report := layoutReport{
		Title:  d.Title,
		Stats:  d.Draw(sc),
		Layers: d.LayerInfos(),
	}
	if b := sc.Bounds(); !b.IsEmpty() {
		report.Bounds = &b
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	out := newPrinter(w)
	if report.Title != "" {
		out.title(report.Title)
	}
	out.line(layerTable(report.Layers))
	if report.Bounds != nil {
		b := report.Bounds
		out.keyValue("bounds", fmt.Sprintf("(%.2f, %.2f) to (%.2f, %.2f)", b.MinX, b.MinY, b.MaxX, b.MaxY))
	}
	out.stats(report.Stats, "")
	out.nextStep("Render", appName+" render "+input)
	return nil
}

// layerTable formats layers as a bordered table.
func layerTable(layers []sink.LayerInfo) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(layers))
	for _, l := range layers {
		rows = append(rows, []string{
			l.Name,
			strconv.Itoa(l.Rows) + "x" + strconv.Itoa(l.Columns),
			fmtPoint(l.Anchor),
			fmt.Sprintf("%.2f x %.2f", l.Rect.W, -l.Rect.H),
			l.Draw,
			dash(l.Activation),
			dash(l.Special),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Layer", "Grid", "Anchor", "Size", "Draw", "Activation", "Special").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 2 || col == 3 {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle
		})
	return t.String()
}

func fmtPoint(p geom.Point) string { return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y) }

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
