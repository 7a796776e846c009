package export

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/exp/maps"

	"github.com/san-kum/cosmosim/internal/panels"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ViewMarkdown flattens a view into a markdown document.
func ViewMarkdown(v *panels.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", v.Header)
	if v.Description != "" {
		fmt.Fprintf(&b, "*%s*\n\n", v.Description)
	}
	if v.Markdown != "" {
		b.WriteString(v.Markdown)
		b.WriteString("\n")
	} else {
		for _, line := range v.Lines {
			b.WriteString(line)
			b.WriteString("\n\n")
		}
	}
	if c := v.Chart; c != nil && c.Result != nil && len(c.Result.Metrics) > 0 {
		b.WriteString("| metric | value |\n|---|---|\n")
		names := maps.Keys(c.Result.Metrics)
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(&b, "| %s | %.6g |\n", name, c.Result.Metrics[name])
		}
	}
	return b.String()
}

// WriteHTML renders the view as a standalone page with the chart inlined
// as SVG.
func WriteHTML(w io.Writer, v *panels.View) error {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(ViewMarkdown(v)), &body); err != nil {
		return err
	}

	var chart string
	if c := v.Chart; c != nil && c.Result != nil {
		svg, err := ChartToSVG(c, DefaultWidth, DefaultHeight)
		if err != nil {
			return err
		}
		chart = "<figure>\n" + svg + "\n</figure>\n"
	}

	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s%s</body>
</html>
`, html.EscapeString(v.Header), body.String(), chart)
	return err
}
