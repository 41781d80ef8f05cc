package service

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-transcript-api/internal/models"
	"github.com/noah-isme/sma-transcript-api/pkg/export"
	appErrors "github.com/noah-isme/sma-transcript-api/pkg/errors"
)

var pdfTextPattern = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\) Tj`)

var pdfTextUnescaper = strings.NewReplacer(`\\`, `\`, `\(`, `(`, `\)`, `)`)

func pdfText(raw []byte) []string {
	matches := pdfTextPattern.FindAllSubmatch(raw, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, pdfTextUnescaper.Replace(string(m[1])))
	}
	return out
}

func plainRenderer() *TranscriptRenderer {
	return NewTranscriptRenderer(export.NewPDFExporter(export.PDFOptions{Compress: false}), nil)
}

var testMeta = models.StudentMeta{StudentID: "S1001", FirstName: "Ada", LastName: "Lovelace", Programme: "Computer Science"}

type failingEncoder struct{}

func (failingEncoder) Render(export.Document) ([]byte, error) {
	return nil, errors.New("encoder exploded")
}

func TestTranscriptRendererRoundTripsCells(t *testing.T) {
	history := []models.EnrollmentRecord{
		attempt(1, "CS101", 85, "A", false),
		attempt(2, "MATH201", 40, "F", true),
	}
	history[0].CourseTitle = "Programming (Intro)"
	history[1].CourseTitle = "Linear Algebra"

	raw, err := plainRenderer().Render(testMeta, history, history[:1], history[1:], ComputeSummary(history, testGrades))
	require.NoError(t, err)

	text := pdfText(raw)
	for _, r := range history {
		assert.Contains(t, text, r.CourseCode)
		assert.Contains(t, text, r.CourseTitle)
		assert.Contains(t, text, r.GradeLabel())
	}
	for _, want := range []string{
		"ACADEMIC TRANSCRIPT",
		"Student ID: S1001",
		"Name: Ada Lovelace",
		"Programme: Computer Science",
		"History", "Passed Courses", "Failed Courses",
		"Course Code", "Course Title", "Grade", "Mark",
		"85", "40",
		"Calculated GPA: 2.00",
		"Total Units Completed (History): 2",
		"Total Units Passed: 1",
		"Total Units Failed: 1",
	} {
		assert.Contains(t, text, want)
	}
}

func TestTranscriptRendererEmptyTranscript(t *testing.T) {
	raw, err := plainRenderer().Render(testMeta, nil, nil, nil, ComputeSummary(nil, testGrades))
	require.NoError(t, err)

	text := pdfText(raw)
	assert.Contains(t, text, "ACADEMIC TRANSCRIPT")
	assert.Contains(t, text, "Student ID: S1001")
	assert.Contains(t, text, "Calculated GPA: 0.00")
	for _, absent := range []string{"History", "Passed Courses", "Failed Courses", "Course Code"} {
		assert.NotContains(t, text, absent)
	}
}

func TestBuildTranscriptDocumentOmitsEmptyTables(t *testing.T) {
	history := []models.EnrollmentRecord{attempt(1, "CS101", 85, "", false)}
	doc := BuildTranscriptDocument(testMeta, history, nil, nil, models.GpaSummary{})

	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "History", doc.Tables[0].Title)
	assert.Equal(t, []string{"CS101", "CS101 title", "", "85"}, doc.Tables[0].Rows[0])
	assert.Equal(t, "Calculated GPA: 0.00", doc.Summary[0].Text)
	assert.True(t, doc.Summary[0].Bold)
}

func TestTranscriptRendererCSV(t *testing.T) {
	history := []models.EnrollmentRecord{attempt(1, "CS101", 85, "A", false)}
	raw, err := plainRenderer().RenderCSV(testMeta, history, history, nil, ComputeSummary(history, testGrades))
	require.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, "Course Code,Course Title,Grade,Mark")
	assert.Contains(t, out, "CS101,CS101 title,A,85")
	assert.Contains(t, out, "Calculated GPA: 4.00")
	assert.NotContains(t, out, "Failed Courses")
}

func TestTranscriptRendererWrapsEncoderFailure(t *testing.T) {
	renderer := NewTranscriptRenderer(failingEncoder{}, failingEncoder{})

	_, err := renderer.Render(testMeta, nil, nil, nil, models.GpaSummary{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRender.Code, appErrors.FromError(err).Code)

	_, err = renderer.RenderCSV(testMeta, nil, nil, nil, models.GpaSummary{})
	assert.Equal(t, appErrors.ErrRender.Code, appErrors.FromError(err).Code)
}

func TestTranscriptRendererRejectsUnencodableText(t *testing.T) {
	record := attempt(1, "MAOR101", 80, "A", false)
	record.CourseTitle = "Māori Studies"

	raw, err := plainRenderer().Render(testMeta, []models.EnrollmentRecord{record}, nil, nil, models.GpaSummary{})
	require.Error(t, err)
	assert.Nil(t, raw)
	assert.Equal(t, appErrors.ErrRender.Code, appErrors.FromError(err).Code)

	meta := testMeta
	meta.LastName = "Nguyễn"
	_, err = plainRenderer().Render(meta, nil, nil, nil, models.GpaSummary{})
	assert.Equal(t, appErrors.ErrRender.Code, appErrors.FromError(err).Code)
}
