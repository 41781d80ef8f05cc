package service

import (
	"fmt"
	"strconv"

	"github.com/noah-isme/sma-transcript-api/internal/models"
	"github.com/noah-isme/sma-transcript-api/pkg/export"
	appErrors "github.com/noah-isme/sma-transcript-api/pkg/errors"
)

const transcriptTitle = "Academic Transcript"

var (
	transcriptHeaders = []string{"Course Code", "Course Title", "Grade", "Mark"}
	transcriptWidths  = []float64{40, 80, 30, 30}
)

type documentEncoder interface {
	Render(doc export.Document) ([]byte, error)
}

// TranscriptRenderer lays out transcript content and encodes it.
type TranscriptRenderer struct {
	pdf documentEncoder
	csv documentEncoder
}

// NewTranscriptRenderer constructs a renderer with the given encoders. Nil encoders fall back to the defaults.
func NewTranscriptRenderer(pdf, csv documentEncoder) *TranscriptRenderer {
	if pdf == nil {
		pdf = export.NewPDFExporter(export.PDFOptions{Compress: true})
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	return &TranscriptRenderer{pdf: pdf, csv: csv}
}

// Render produces the transcript PDF.
func (r *TranscriptRenderer) Render(meta models.StudentMeta, history, passed, failed []models.EnrollmentRecord, summary models.GpaSummary) ([]byte, error) {
	return r.encode(r.pdf, BuildTranscriptDocument(meta, history, passed, failed, summary))
}

// RenderCSV produces the same document as CSV.
func (r *TranscriptRenderer) RenderCSV(meta models.StudentMeta, history, passed, failed []models.EnrollmentRecord, summary models.GpaSummary) ([]byte, error) {
	return r.encode(r.csv, BuildTranscriptDocument(meta, history, passed, failed, summary))
}

func (r *TranscriptRenderer) encode(encoder documentEncoder, doc export.Document) ([]byte, error) {
	payload, err := encoder.Render(doc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrRender.Code, appErrors.ErrRender.Status, appErrors.ErrRender.Message)
	}
	return payload, nil
}

// BuildTranscriptDocument assembles the transcript layout. Empty tables are left out.
func BuildTranscriptDocument(meta models.StudentMeta, history, passed, failed []models.EnrollmentRecord, summary models.GpaSummary) export.Document {
	return export.NewDocumentBuilder(transcriptTitle).
		HeaderLine("Student ID: "+meta.StudentID).
		HeaderLine("Name: "+meta.FullName()).
		HeaderLine("Programme: "+meta.Programme).
		Table("History", transcriptHeaders, transcriptWidths, courseRows(history)).
		Table("Passed Courses", transcriptHeaders, transcriptWidths, courseRows(passed)).
		Table("Failed Courses", transcriptHeaders, transcriptWidths, courseRows(failed)).
		SummaryLine(fmt.Sprintf("Calculated GPA: %.2f", summary.GPA), true).
		SummaryLine(fmt.Sprintf("Total Units Completed (History): %d", summary.Completed), false).
		SummaryLine(fmt.Sprintf("Total Units Passed: %d", summary.Passed), false).
		SummaryLine(fmt.Sprintf("Total Units Failed: %d", summary.Failed), false).
		Build()
}

func courseRows(records []models.EnrollmentRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.CourseCode,
			record.CourseTitle,
			record.GradeLabel(),
			strconv.Itoa(record.Mark),
		})
	}
	return rows
}
