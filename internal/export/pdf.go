package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/san-kum/cosmosim/internal/panels"
)

const (
	pdfMargin     = 15.0
	pdfPlotHeight = 110.0
)

// WritePDF lays out the view on a landscape A4 page: header, text lines
// and, when present, the chart drawn as a polyline inside a framed plot.
func WritePDF(w io.Writer, v *panels.View) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentW, 10, v.Header, "", 1, "L", false, 0, "")

	if v.Description != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(80, 80, 80)
		pdf.MultiCell(contentW, 6, v.Description, "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(50, 50, 50)
	for _, line := range v.Lines {
		pdf.MultiCell(contentW, 6, line, "", "L", false)
	}

	if c := v.Chart; c != nil && c.Result != nil {
		if c.Result.Len() < 2 {
			return ErrTooFewPoints
		}
		pdf.Ln(6)
		drawPDFChart(pdf, c, pdfMargin+10, pdf.GetY(), contentW-10, pdfPlotHeight)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func drawPDFChart(pdf *fpdf.Fpdf, c *panels.Chart, x, y, w, h float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.Text(x, y, c.Title)
	y += 4

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, h, "D")

	points := c.Result.Points()
	b := paddedBounds(points)

	pdf.SetDrawColor(204, 0, 204)
	pdf.SetLineWidth(0.5)
	px, py := b.project(points[0], w, h)
	for _, p := range points[1:] {
		nx, ny := b.project(p, w, h)
		pdf.Line(x+px, y+py, x+nx, y+ny)
		px, py = nx, ny
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(80, 80, 80)
	t0 := c.Result.Times[0]
	t1, _ := c.Result.Last()
	pdf.Text(x, y+h+5, fmt.Sprintf("%.2f", t0))
	pdf.Text(x+w-10, y+h+5, fmt.Sprintf("%.2f", t1))
	pdf.Text(x+w/2-10, y+h+9, c.XLabel)

	lo, hi := c.Result.Values[0], c.Result.Values[0]
	for _, v := range c.Result.Values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	pdf.Text(x-10, y+h, fmt.Sprintf("%.4g", lo))
	pdf.Text(x-10, y+4, fmt.Sprintf("%.4g", hi))
	pdf.TransformBegin()
	pdf.TransformRotate(90, x-11, y+h/2+15)
	pdf.Text(x-11, y+h/2+15, c.YLabel)
	pdf.TransformEnd()
}
