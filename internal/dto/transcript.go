package dto

import (
	"sort"

	"github.com/noah-isme/sma-transcript-api/internal/models"
)

// TranscriptCourse is one course row of a transcript preview.
type TranscriptCourse struct {
	CourseCode  string  `json:"course_code"`
	CourseTitle string  `json:"course_title"`
	CourseLevel int     `json:"course_level"`
	Grade       string  `json:"grade"`
	Mark        int     `json:"mark"`
	Points      float64 `json:"points"`
	Semester    int     `json:"semester"`
}

// TranscriptResponse is the JSON preview of a transcript.
type TranscriptResponse struct {
	StudentID string             `json:"student_id"`
	Name      string             `json:"name"`
	Programme string             `json:"programme"`
	History   []TranscriptCourse `json:"history"`
	Passed    []TranscriptCourse `json:"passed"`
	Failed    []TranscriptCourse `json:"failed"`
	Summary   models.GpaSummary  `json:"summary"`
}

// GradeScaleItem is one grade band.
type GradeScaleItem struct {
	Grade   string  `json:"grade"`
	MinMark int     `json:"min_mark"`
	Points  float64 `json:"points"`
}

// NewTranscriptResponse projects a transcript onto its preview shape.
func NewTranscriptResponse(t *models.Transcript, grades models.GradeMap) TranscriptResponse {
	return TranscriptResponse{
		StudentID: t.Meta.StudentID,
		Name:      t.Meta.FullName(),
		Programme: t.Meta.Programme,
		History:   transcriptCourses(t.History, grades),
		Passed:    transcriptCourses(t.Passed, grades),
		Failed:    transcriptCourses(t.Failed, grades),
		Summary:   t.Summary,
	}
}

func transcriptCourses(records []models.EnrollmentRecord, grades models.GradeMap) []TranscriptCourse {
	out := make([]TranscriptCourse, 0, len(records))
	for _, r := range records {
		out = append(out, TranscriptCourse{
			CourseCode:  r.CourseCode,
			CourseTitle: r.CourseTitle,
			CourseLevel: r.CourseLevel,
			Grade:       r.GradeLabel(),
			Mark:        r.Mark,
			Points:      grades.Points(r.Grade),
			Semester:    r.SemesterEnrolled,
		})
	}
	return out
}

// NewGradeScaleItems lists the scale from the highest threshold down.
func NewGradeScaleItems(scale models.GradeScale) []GradeScaleItem {
	items := make([]GradeScaleItem, 0, len(scale))
	for label, entry := range scale {
		items = append(items, GradeScaleItem{Grade: label, MinMark: entry.Mark, Points: entry.Points()})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].MinMark != items[j].MinMark {
			return items[i].MinMark > items[j].MinMark
		}
		return items[i].Grade < items[j].Grade
	})
	return items
}
