package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Theme       Theme
	Title       lipgloss.Style
	Header      lipgloss.Style
	Subtle      lipgloss.Style
	Text        lipgloss.Style
	Selected    lipgloss.Style
	Focused     lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Error       lipgloss.Style
	KeyHint     lipgloss.Style
	Panel       lipgloss.Style
	FocusPanel  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Subtle: lipgloss.NewStyle().
			Foreground(t.Muted),
		Text: lipgloss.NewStyle().
			Foreground(t.Text),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Focused: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		MetricLabel: lipgloss.NewStyle().
			Foreground(t.Muted),
		MetricValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Error),
		KeyHint: lipgloss.NewStyle().
			Italic(true).
			Foreground(t.Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		FocusPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),
	}
}

// GradientText colors each rune of text along a blend from start to end.
// Invalid colors leave the text unstyled.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	from, err := colorful.Hex(string(start))
	if err != nil {
		return text
	}
	to, err := colorful.Hex(string(end))
	if err != nil {
		return text
	}

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.BlendLab(to, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

// Sparkline renders values as a one-line bar chart, sampled to width.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(len(chars)-1, idx))
		b.WriteRune(chars[idx])
	}
	return b.String()
}

func Separator(width int, s Styles) string {
	if width < 8 {
		return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}
