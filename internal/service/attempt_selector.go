package service

import (
	"sort"

	"github.com/noah-isme/sma-transcript-api/internal/models"
)

// SelectBestAttempts keeps exactly one attempt per course code.
//
// Within a course the highest-mark attempt among those that earned positive grade
// points and are not flagged failed is chosen. When no attempt qualifies the
// highest-mark attempt overall is chosen. Equal marks resolve to the lowest record
// id. The result is ordered by course code.
func SelectBestAttempts(records []models.EnrollmentRecord, grades models.GradeMap) []models.EnrollmentRecord {
	if len(records) == 0 {
		return []models.EnrollmentRecord{}
	}

	best := make(map[string]models.EnrollmentRecord)
	bestPassing := make(map[string]models.EnrollmentRecord)
	for _, record := range records {
		if current, ok := best[record.CourseCode]; !ok || betterAttempt(record, current) {
			best[record.CourseCode] = record
		}
		if !isPassingAttempt(record, grades) {
			continue
		}
		if current, ok := bestPassing[record.CourseCode]; !ok || betterAttempt(record, current) {
			bestPassing[record.CourseCode] = record
		}
	}

	selected := make([]models.EnrollmentRecord, 0, len(best))
	for code, record := range best {
		if passing, ok := bestPassing[code]; ok {
			record = passing
		}
		selected = append(selected, record)
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].CourseCode < selected[j].CourseCode
	})
	return selected
}

func isPassingAttempt(record models.EnrollmentRecord, grades models.GradeMap) bool {
	return grades.Points(record.Grade) > 0 && !record.Failed
}

func betterAttempt(candidate, current models.EnrollmentRecord) bool {
	if candidate.Mark != current.Mark {
		return candidate.Mark > current.Mark
	}
	return candidate.ID < current.ID
}

// SortByCourseLevel orders records by ascending course level, keeping the existing order for equal levels.
func SortByCourseLevel(records []models.EnrollmentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CourseLevel < records[j].CourseLevel
	})
}

// PassedAttempts returns the records that are completed and not failed.
func PassedAttempts(records []models.EnrollmentRecord) []models.EnrollmentRecord {
	out := make([]models.EnrollmentRecord, 0, len(records))
	for _, record := range records {
		if record.CountsAsPassed() {
			out = append(out, record)
		}
	}
	return out
}

// FailedAttempts returns every record flagged failed, without deduplication.
func FailedAttempts(records []models.EnrollmentRecord) []models.EnrollmentRecord {
	out := make([]models.EnrollmentRecord, 0, len(records))
	for _, record := range records {
		if record.Failed {
			out = append(out, record)
		}
	}
	return out
}
