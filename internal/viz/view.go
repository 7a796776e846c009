package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/san-kum/cosmosim/internal/panels"
)

// RenderView lays out a panel view as styled text no wider than width.
func RenderView(v *panels.View, width int, s Styles) string {
	if v == nil {
		return ""
	}
	if width <= 0 {
		width = DefaultChartWidth + 12
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(GradientText(v.Header, s.Theme.Primary, s.Theme.Secondary))
	b.WriteString("\n")
	if v.Description != "" {
		b.WriteString(s.Subtle.Render(wrap.Render(v.Description)))
		b.WriteString("\n")
	}
	b.WriteString(Separator(width, s))
	b.WriteString("\n\n")

	if v.Markdown != "" {
		b.WriteString(s.Text.Render(wrap.Render(PlainMarkdown(v.Markdown))))
		b.WriteString("\n\n")
	} else {
		for _, line := range v.Lines {
			b.WriteString(s.Text.Render(wrap.Render(line)))
			b.WriteString("\n")
		}
	}

	if v.Chart != nil {
		if v.Markdown == "" && len(v.Lines) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Title.Render(v.Chart.Title))
		b.WriteString("\n")
		b.WriteString(PlotChart(v.Chart, width-12, DefaultChartHeight))
		b.WriteString("\n")
		if m := RenderMetrics(v.Chart.Result.Metrics, s); m != "" {
			b.WriteString("\n" + m + "\n")
		}
	}
	return b.String()
}

// RenderMetrics prints metrics as "name value" pairs in name order.
func RenderMetrics(metrics map[string]float64, s Styles) string {
	if len(metrics) == 0 {
		return ""
	}
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = s.MetricLabel.Render(name+" ") + s.MetricValue.Render(fmt.Sprintf("%.4g", metrics[name]))
	}
	return strings.Join(parts, "  ")
}

// PlainMarkdown strips markdown syntax, keeping headings and paragraphs as
// separate blocks and list items as bullets.
func PlainMarkdown(src string) string {
	source := []byte(src)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := n.(type) {
		case *ast.Text:
			if !entering {
				break
			}
			b.Write(n.Segment.Value(source))
			if n.HardLineBreak() {
				b.WriteByte('\n')
			} else if n.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			if entering {
				b.Write(n.Value)
			}
		case *ast.Heading, *ast.Paragraph:
			if !entering {
				b.WriteString("\n\n")
			}
		case *ast.ListItem:
			if entering {
				b.WriteString("• ")
			} else {
				b.WriteString("\n")
			}
		case *ast.List:
			if !entering {
				b.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})

	out := strings.TrimSpace(b.String())
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return out
}
