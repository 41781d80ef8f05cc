package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterSections(t *testing.T) {
	doc := NewDocumentBuilder("Academic Transcript").
		HeaderLine("Name: Ana Tui").
		Table("History", []string{"Course Code", "Course Title", "Grade", "Mark"}, nil, [][]string{{"CS101", "Intro, Programming", "A", "85"}}).
		SummaryLine("Calculated GPA: 4.00", true).
		Build()

	raw, err := NewCSVExporter().Render(doc)
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Academic Transcript"}, records[0])
	assert.Equal(t, []string{"Name: Ana Tui"}, records[1])
	assert.Equal(t, []string{"History"}, records[2])
	assert.Equal(t, []string{"Course Code", "Course Title", "Grade", "Mark"}, records[3])
	assert.Equal(t, []string{"CS101", "Intro, Programming", "A", "85"}, records[4])
	assert.Equal(t, []string{"Calculated GPA: 4.00"}, records[len(records)-1])
}
