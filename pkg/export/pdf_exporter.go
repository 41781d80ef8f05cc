package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"
)

const (
	pageWidth    = 190.0
	bottomMargin = 15.0
	rowHeight    = 10.0
)

// PDFOptions tunes PDF serialisation.
type PDFOptions struct {
	Compress bool
	Author   string
}

// PDFExporter renders documents into paginated A4 PDFs.
type PDFExporter struct {
	opts PDFOptions
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter(opts PDFOptions) *PDFExporter {
	return &PDFExporter{opts: opts}
}

// Render lays out the document and returns the encoded bytes.
func (e *PDFExporter) Render(doc Document) ([]byte, error) {
	if err := checkEncodable(doc); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.opts.Compress)
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, bottomMargin)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	if e.opts.Author != "" {
		pdf.SetAuthor(e.opts.Author, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(strings.ToUpper(doc.Title)), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "", 11)
	for _, line := range doc.Header {
		pdf.CellFormat(0, rowHeight, tr(line.Text), "", 1, "", false, 0, "")
	}
	if len(doc.Header) > 0 {
		pdf.Ln(10)
	}

	for _, table := range doc.Tables {
		writeTable(pdf, tr, table)
	}

	pdf.Ln(5)
	for _, line := range doc.Summary {
		if line.Bold {
			pdf.SetFont("Arial", "B", 11)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(0, rowHeight, tr(line.Text), "", 1, "", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *gofpdf.Fpdf, tr func(string) string, table Table) {
	if len(table.Rows) == 0 || len(table.Headers) == 0 {
		return
	}
	widths := columnWidths(table)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, rowHeight, tr(table.Title), "", 1, "", false, 0, "")
	writeHeaderRow(pdf, tr, table.Headers, widths)

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont("Arial", "", 10)
	for _, row := range table.Rows {
		if pdf.GetY()+rowHeight > pageHeight-bottomMargin {
			pdf.AddPage()
			writeHeaderRow(pdf, tr, table.Headers, widths)
			pdf.SetFont("Arial", "", 10)
		}
		for i := range table.Headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(widths[i], rowHeight, tr(value), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(5)
}

func writeHeaderRow(pdf *gofpdf.Fpdf, tr func(string) string, headers []string, widths []float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	for i, header := range headers {
		pdf.CellFormat(widths[i], rowHeight, tr(header), "1", 0, "", true, 0, "")
	}
	pdf.Ln(-1)
}

func columnWidths(table Table) []float64 {
	if len(table.Widths) == len(table.Headers) {
		return table.Widths
	}
	widths := make([]float64, len(table.Headers))
	for i := range widths {
		widths[i] = pageWidth / float64(len(table.Headers))
	}
	return widths
}

// checkEncodable rejects text the core fonts cannot show. gofpdf replaces such
// runes with '.' instead of failing.
func checkEncodable(doc Document) error {
	encoder := charmap.Windows1252.NewEncoder()
	check := func(text string) error {
		if _, err := encoder.String(text); err != nil {
			return fmt.Errorf("text %q is not representable in cp1252: %w", text, err)
		}
		return nil
	}

	texts := []string{doc.Title, strings.ToUpper(doc.Title)}
	for _, line := range doc.Header {
		texts = append(texts, line.Text)
	}
	for _, table := range doc.Tables {
		texts = append(texts, table.Title)
		texts = append(texts, table.Headers...)
		for _, row := range table.Rows {
			texts = append(texts, row...)
		}
	}
	for _, line := range doc.Summary {
		texts = append(texts, line.Text)
	}

	for _, text := range texts {
		if err := check(text); err != nil {
			return err
		}
	}
	return nil
}
