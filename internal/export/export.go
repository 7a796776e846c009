// Package export writes a rendered panel to a file: the chart as data (CSV,
// JSON) or as a picture (SVG, PNG, PDF), or the whole view as an HTML page.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/cosmosim/internal/panels"
)

var (
	ErrUnsupportedFormat = errors.New("export: unsupported format")
	ErrNoView            = errors.New("export: nothing to export")
	ErrNoChart           = errors.New("export: view has no chart")
	ErrTooFewPoints      = errors.New("export: chart needs at least two points")
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	SVG  Format = "svg"
	PNG  Format = "png"
	PDF  Format = "pdf"
	HTML Format = "html"
)

var formats = []Format{CSV, JSON, SVG, PNG, PDF, HTML}

func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if s == "htm" {
		return HTML, nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available: %s)", ErrUnsupportedFormat, s, strings.Join(Formats(), ", "))
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Write encodes v to w in format f. Chart formats fail with ErrNoChart
// when the view has no chart.
func Write(w io.Writer, f Format, v *panels.View) error {
	if v == nil {
		return ErrNoView
	}
	switch f {
	case JSON:
		return WriteJSON(w, v)
	case HTML:
		return WriteHTML(w, v)
	case PDF:
		return WritePDF(w, v)
	}

	if v.Chart == nil || v.Chart.Result == nil {
		return ErrNoChart
	}
	switch f {
	case CSV:
		return WriteCSV(w, v.Chart)
	case SVG:
		return WriteSVG(w, v.Chart, DefaultWidth, DefaultHeight)
	case PNG:
		return WritePNG(w, v.Chart, DefaultWidth, DefaultHeight)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// WriteFile creates path and writes v into it. A failed export removes the
// partial file.
func WriteFile(path string, f Format, v *panels.View) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return Write(file, f, v)
}
