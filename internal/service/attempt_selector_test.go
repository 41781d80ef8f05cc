package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-transcript-api/internal/models"
)

func grade(label string) *string {
	return &label
}

func attempt(id int64, code string, mark int, label string, failed bool) models.EnrollmentRecord {
	r := models.EnrollmentRecord{ID: id, StudentID: 7, CourseCode: code, CourseTitle: code + " title", Mark: mark, Completed: true, Failed: failed}
	if label != "" {
		r.Grade = grade(label)
	}
	return r
}

var testGrades = models.GradeMap{"A": 4.0, "B": 3.0, "C": 2.0, "F": 0.0}

func TestSelectBestAttemptsPrefersPassingAttempt(t *testing.T) {
	records := []models.EnrollmentRecord{
		attempt(1, "CS101", 95, "F", true),
		attempt(2, "CS101", 60, "C", false),
		attempt(3, "CS101", 70, "B", false),
	}

	selected := SelectBestAttempts(records, testGrades)
	require.Len(t, selected, 1)
	assert.Equal(t, int64(3), selected[0].ID)
}

func TestSelectBestAttemptsFallsBackToHighestMark(t *testing.T) {
	records := []models.EnrollmentRecord{
		attempt(1, "CS101", 30, "F", true),
		attempt(2, "CS101", 45, "", false),
		attempt(3, "CS101", 40, "Z", false),
	}

	selected := SelectBestAttempts(records, testGrades)
	require.Len(t, selected, 1)
	assert.Equal(t, int64(2), selected[0].ID)
}

func TestSelectBestAttemptsPassingRequiresNotFailed(t *testing.T) {
	records := []models.EnrollmentRecord{
		attempt(1, "CS101", 90, "A", true),
		attempt(2, "CS101", 55, "C", false),
	}

	selected := SelectBestAttempts(records, testGrades)
	require.Len(t, selected, 1)
	assert.Equal(t, int64(2), selected[0].ID)
}

func TestSelectBestAttemptsTieGoesToLowestID(t *testing.T) {
	records := []models.EnrollmentRecord{
		attempt(9, "CS101", 80, "A", false),
		attempt(4, "CS101", 80, "B", false),
		attempt(6, "CS101", 80, "A", false),
	}

	for i := 0; i < 5; i++ {
		selected := SelectBestAttempts(records, testGrades)
		require.Len(t, selected, 1)
		assert.Equal(t, int64(4), selected[0].ID)
	}
}

func TestSelectBestAttemptsOneRecordPerCourse(t *testing.T) {
	records := []models.EnrollmentRecord{
		attempt(1, "MATH201", 40, "F", true),
		attempt(2, "CS101", 85, "A", false),
		attempt(3, "CS101", 50, "F", true),
		attempt(4, "PHY110", 66, "B", false),
		attempt(5, "PHY110", 72, "B", false),
		attempt(6, "ENG100", 0, "", false),
	}

	selected := SelectBestAttempts(records, testGrades)
	require.Len(t, selected, 4)

	codes := make([]string, 0, len(selected))
	for _, r := range selected {
		codes = append(codes, r.CourseCode)
	}
	assert.Equal(t, []string{"CS101", "ENG100", "MATH201", "PHY110"}, codes)
}

func TestSelectBestAttemptsMarkProperties(t *testing.T) {
	records := []models.EnrollmentRecord{
		attempt(1, "A1", 10, "A", false),
		attempt(2, "A1", 90, "F", true),
		attempt(3, "A1", 30, "B", false),
		attempt(4, "B1", 20, "F", true),
		attempt(5, "B1", 70, "F", false),
		attempt(6, "B1", 50, "", false),
	}

	selected := SelectBestAttempts(records, testGrades)
	groups := make(map[string][]models.EnrollmentRecord)
	for _, r := range records {
		groups[r.CourseCode] = append(groups[r.CourseCode], r)
	}

	for _, chosen := range selected {
		group := groups[chosen.CourseCode]
		var passing []models.EnrollmentRecord
		for _, r := range group {
			if testGrades.Points(r.Grade) > 0 && !r.Failed {
				passing = append(passing, r)
			}
		}
		if len(passing) > 0 {
			assert.Contains(t, passing, chosen)
			for _, r := range passing {
				assert.GreaterOrEqual(t, chosen.Mark, r.Mark)
			}
			continue
		}
		for _, r := range group {
			assert.GreaterOrEqual(t, chosen.Mark, r.Mark)
		}
	}
	assert.Equal(t, int64(3), selected[0].ID)
	assert.Equal(t, int64(5), selected[1].ID)
}

func TestSelectBestAttemptsEmpty(t *testing.T) {
	assert.Empty(t, SelectBestAttempts(nil, testGrades))
}

func TestSortByCourseLevelIsStable(t *testing.T) {
	records := []models.EnrollmentRecord{
		{CourseCode: "C", CourseLevel: 200},
		{CourseCode: "A", CourseLevel: 100},
		{CourseCode: "B", CourseLevel: 200},
		{CourseCode: "D", CourseLevel: 100},
	}
	SortByCourseLevel(records)

	codes := []string{records[0].CourseCode, records[1].CourseCode, records[2].CourseCode, records[3].CourseCode}
	assert.Equal(t, []string{"A", "D", "C", "B"}, codes)
}

func TestPassedAndFailedAttempts(t *testing.T) {
	records := []models.EnrollmentRecord{
		attempt(1, "CS101", 50, "F", true),
		attempt(2, "CS101", 85, "A", false),
		attempt(3, "CS102", 20, "F", true),
	}
	records = append(records, models.EnrollmentRecord{ID: 4, CourseCode: "CS103", Completed: false})

	passed := PassedAttempts(records)
	require.Len(t, passed, 1)
	assert.Equal(t, int64(2), passed[0].ID)

	failed := FailedAttempts(records)
	require.Len(t, failed, 2)
	assert.Equal(t, int64(1), failed[0].ID)
	assert.Equal(t, int64(3), failed[1].ID)
}
