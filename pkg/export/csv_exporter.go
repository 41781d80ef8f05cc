package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders documents into CSV bytes, one section per table.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the document.
func (e *CSVExporter) Render(doc Document) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	records := make([][]string, 0)
	if doc.Title != "" {
		records = append(records, []string{doc.Title})
	}
	for _, line := range doc.Header {
		records = append(records, []string{line.Text})
	}
	for _, table := range doc.Tables {
		records = append(records, []string{}, []string{table.Title}, table.Headers)
		for _, row := range table.Rows {
			record := make([]string, len(table.Headers))
			copy(record, row)
			records = append(records, record)
		}
	}
	if len(doc.Summary) > 0 {
		records = append(records, []string{})
	}
	for _, line := range doc.Summary {
		records = append(records, []string{line.Text})
	}

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
