package models

import "time"

// EnrollmentRecord is one student's attempt at one course offering, joined with course metadata.
type EnrollmentRecord struct {
	ID                     int64      `db:"id" json:"id"`
	StudentID              int64      `db:"student_id" json:"student_id"`
	CourseCode             string     `db:"course_code" json:"course_code"`
	Completed              bool       `db:"completed" json:"completed"`
	Failed                 bool       `db:"failed" json:"failed"`
	Cancelled              bool       `db:"cancelled" json:"cancelled"`
	CurrentlyTaking        bool       `db:"currently_taking" json:"currently_taking"`
	Mark                   int        `db:"mark" json:"mark"`
	Grade                  *string    `db:"grade" json:"grade,omitempty"`
	Paid                   bool       `db:"paid" json:"paid"`
	DateEnrolled           *time.Time `db:"date_enrolled" json:"date_enrolled,omitempty"`
	SemesterEnrolled       int        `db:"semester_enrolled" json:"semester_enrolled"`
	RequestGradeChange     bool       `db:"request_grade_change" json:"request_grade_change"`
	RequestGradeChangeDate *time.Time `db:"request_grade_change_date" json:"request_grade_change_date,omitempty"`
	RequestGradeChangeTime *string    `db:"request_grade_change_time" json:"request_grade_change_time,omitempty"`
	ProgrammeID            *int64     `db:"programme_id" json:"programme_id,omitempty"`
	CourseTitle            string     `db:"course_title" json:"course_title"`
	CourseLevel            int        `db:"course_level" json:"course_level"`
}

// GradeLabel returns the grade or an empty string when it is NULL.
func (r EnrollmentRecord) GradeLabel() string {
	if r.Grade == nil {
		return ""
	}
	return *r.Grade
}

// CountsAsPassed reports whether the attempt is completed and not flagged failed.
func (r EnrollmentRecord) CountsAsPassed() bool {
	return r.Completed && !r.Failed
}

// StudentMeta identifies the student on the transcript header.
type StudentMeta struct {
	StudentID string `db:"student_id" json:"student_id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Programme string `db:"programme" json:"programme"`
}

// FullName joins first and last name.
func (m StudentMeta) FullName() string {
	return m.FirstName + " " + m.LastName
}

// GradeMap maps a grade label to its grade-point value.
type GradeMap map[string]float64

// Points returns the grade-point value for grade, 0 for NULL or unmapped grades.
func (g GradeMap) Points(grade *string) float64 {
	if grade == nil {
		return 0
	}
	return g[*grade]
}

// GradeScaleEntry is one row of the grade-scale configuration file.
type GradeScaleEntry struct {
	Mark int      `json:"mark" yaml:"mark" validate:"gte=0,lte=100"`
	GPA  *float64 `json:"gpa" yaml:"gpa" validate:"required,gte=0"`
}

// Points returns the grade-point value, 0 when it is unset.
func (e GradeScaleEntry) Points() float64 {
	if e.GPA == nil {
		return 0
	}
	return *e.GPA
}

// GradeScale is the full grade-scale configuration keyed by grade label.
type GradeScale map[string]GradeScaleEntry

// GradeMap projects the scale onto grade points.
func (s GradeScale) GradeMap() GradeMap {
	out := make(GradeMap, len(s))
	for label, entry := range s {
		out[label] = entry.Points()
	}
	return out
}

// GpaSummary aggregates grade points over a set of attempts.
type GpaSummary struct {
	GPA       float64 `json:"gpa"`
	Completed int     `json:"completed"`
	Passed    int     `json:"passed"`
	Failed    int     `json:"failed"`
}

// Transcript is the assembled content of a student's transcript before rendering.
// Grades is the grade map it was built with.
type Transcript struct {
	Meta    StudentMeta        `json:"meta"`
	History []EnrollmentRecord `json:"history"`
	Passed  []EnrollmentRecord `json:"passed"`
	Failed  []EnrollmentRecord `json:"failed"`
	Summary GpaSummary         `json:"summary"`
	Grades  GradeMap           `json:"-"`
}
