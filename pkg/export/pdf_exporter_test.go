package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var showTextPattern = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\) Tj`)

var pdfUnescaper = strings.NewReplacer(`\\`, `\`, `\(`, `(`, `\)`, `)`, `\r`, "\r")

// extractText returns every string drawn on the pages of an uncompressed PDF.
func extractText(raw []byte) []string {
	matches := showTextPattern.FindAllSubmatch(raw, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, pdfUnescaper.Replace(string(m[1])))
	}
	return out
}

func TestPDFExporterRoundTripsCells(t *testing.T) {
	doc := NewDocumentBuilder("Academic Transcript").
		HeaderLine("Student ID: S11223344").
		Table("History", []string{"Course Code", "Course Title", "Grade", "Mark"}, []float64{40, 80, 30, 30}, [][]string{
			{"CS101", "Intro (Part 1) \\ Basics", "A+", "91"},
			{"MA102", "Calculus", "", "0"},
		}).
		SummaryLine("Calculated GPA: 4.50", true).
		Build()

	raw, err := NewPDFExporter(PDFOptions{}).Render(doc)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))

	text := extractText(raw)
	for _, want := range []string{"ACADEMIC TRANSCRIPT", "Student ID: S11223344", "History", "Course Code", "CS101", "Intro (Part 1) \\ Basics", "A+", "91", "MA102", "Calculus", "0", "Calculated GPA: 4.50"} {
		assert.Contains(t, text, want)
	}
}

func TestPDFExporterPaginatesLongTables(t *testing.T) {
	rows := make([][]string, 0, 60)
	for i := 0; i < 60; i++ {
		rows = append(rows, []string{fmt.Sprintf("C%03d", i), "Title", "B", "70"})
	}
	doc := NewDocumentBuilder("T").Table("History", []string{"Course Code", "Course Title", "Grade", "Mark"}, nil, rows).Build()

	raw, err := NewPDFExporter(PDFOptions{}).Render(doc)
	require.NoError(t, err)

	pages := bytes.Count(raw, []byte("/Type /Page\n"))
	assert.Greater(t, pages, 1)
	text := extractText(raw)
	assert.Contains(t, text, "C059")
	headerCount := 0
	for _, s := range text {
		if s == "Course Code" {
			headerCount++
		}
	}
	assert.Equal(t, pages, headerCount)
}

func TestPDFExporterCompressedOutput(t *testing.T) {
	raw, err := NewPDFExporter(PDFOptions{Compress: true, Author: "Registry"}).Render(NewDocumentBuilder("T").Build())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}

func TestPDFExporterRejectsTextOutsideCP1252(t *testing.T) {
	cases := map[string]Document{
		"cell":    NewDocumentBuilder("T").Table("History", []string{"Course Title"}, nil, [][]string{{"Māori Studies"}}).Build(),
		"header":  NewDocumentBuilder("T").HeaderLine("Name: Łukasz Nowak").Build(),
		"title":   NewDocumentBuilder("Транскрипт").Build(),
		"summary": NewDocumentBuilder("T").SummaryLine("GPA ≈ 3", false).Build(),
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := NewPDFExporter(PDFOptions{}).Render(doc)
			require.Error(t, err)
			assert.Nil(t, raw)
			assert.Contains(t, err.Error(), "cp1252")
		})
	}
}

func TestPDFExporterAcceptsWesternAccents(t *testing.T) {
	doc := NewDocumentBuilder("Relevé de notes").
		HeaderLine("Name: Zoë Müller").
		Table("History", []string{"Course Title"}, nil, [][]string{{"Café Économie – niveau 1"}}).
		Build()

	raw, err := NewPDFExporter(PDFOptions{}).Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}
