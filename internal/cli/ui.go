package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/nnetplot/pkg/diagram"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

// =============================================================================
// Printer
// =============================================================================

// printer writes styled, human-oriented command output. Machine output
// (artifacts on stdout, --json) bypasses it.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) line(s string) { fmt.Fprintln(p.w, s) }

func (p printer) success(format string, args ...any) {
	p.line(styleSuccess.Render("✓") + " " + fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	p.line(styleWarning.Render("! " + fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.line(styleInfo.Render("›") + " " + fmt.Sprintf(format, args...))
}

func (p printer) detail(format string, args ...any) {
	p.line("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

func (p printer) title(s string) { p.line(styleTitle.Render(s)) }

func (p printer) file(path string) {
	p.line("  " + styleDim.Render("→") + " " + styleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + styleValue.Render(value))
}

// stats prints draw counts on one line, e.g.
// "5 layers · 27 nodes · 180 connectors · cached". Zero counts are skipped.
func (p printer) stats(st diagram.DrawStats, cache string) {
	parts := []string{fmt.Sprintf("%d layers", st.Layers)}
	for _, c := range []struct {
		n    int
		unit string
	}{
		{st.Nodes, "nodes"},
		{st.Rects, "rects"},
		{st.Connectors, "connectors"},
		{st.Annotations, "labels"},
	} {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.unit))
		}
	}
	if cache != "" {
		parts = append(parts, cache)
	}
	p.line("  " + styleDim.Render(strings.Join(parts, " · ")))
}

func (p printer) nextStep(description, cmd string) {
	p.line("")
	p.line(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func cacheStatus(hit bool) string {
	if hit {
		return "cached"
	}
	return "fresh"
}
