package service

import "github.com/noah-isme/sma-transcript-api/internal/models"

// ComputeSummary averages grade points over records. Records with a NULL or unmapped
// grade contribute zero points and count as failed.
func ComputeSummary(records []models.EnrollmentRecord, grades models.GradeMap) models.GpaSummary {
	var (
		total   float64
		summary models.GpaSummary
	)
	for _, record := range records {
		points := grades.Points(record.Grade)
		total += points
		summary.Completed++
		if points > 0 {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	if summary.Completed > 0 {
		summary.GPA = total / float64(summary.Completed)
	}
	return summary
}
