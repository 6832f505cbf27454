package heatmap

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	cellWidth     = 7
	maxLabelWidth = 14
)

// TextOptions controls terminal rendering.
type TextOptions struct {
	// Color paints cell backgrounds when the writer supports it.
	Color bool
}

// RenderText prints an annotated heatmap grid. Color degrades to plain text on
// writers that are not color terminals.
func RenderText(w io.Writer, g Grid, opt TextOptions) {
	r := lipgloss.NewRenderer(w)
	cm := colorMap()
	n := g.Size()

	labels := make([]string, n)
	width := 0
	for i := range labels {
		labels[i] = truncate(g.Label(i), maxLabelWidth)
		width = max(width, lipgloss.Width(labels[i]))
	}
	rowLabel := r.NewStyle().Width(width).Align(lipgloss.Left)
	head := r.NewStyle().Width(cellWidth).Align(lipgloss.Right).Bold(true)
	cell := r.NewStyle().Width(cellWidth).Align(lipgloss.Right)

	fmt.Fprintln(w, r.NewStyle().Bold(true).Render(Title))
	var b strings.Builder
	b.WriteString(rowLabel.Render(""))
	for j := 0; j < n; j++ {
		b.WriteString(" ")
		b.WriteString(head.Render(truncate(labels[j], cellWidth)))
	}
	fmt.Fprintln(w, b.String())

	for i := 0; i < n; i++ {
		b.Reset()
		b.WriteString(rowLabel.Render(labels[i]))
		for j := 0; j < n; j++ {
			v := g.At(i, j)
			st := cell
			if opt.Color {
				bg := cellColor(cm, v)
				fg := lipgloss.Color("#000000")
				if !math.IsNaN(v) && math.Abs(v) > 0.6 {
					fg = lipgloss.Color("#ffffff")
				}
				st = st.Background(lipgloss.Color(hex(bg))).Foreground(fg)
			}
			b.WriteString(" ")
			b.WriteString(st.Render(annotate(v)))
		}
		fmt.Fprintln(w, b.String())
	}
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
