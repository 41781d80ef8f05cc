package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-transcript-api/internal/models"
)

var enrollmentColumns = []string{
	"ce.id", "ce.student_id", "ce.completed", "ce.failed", "ce.cancelled",
	"ce.mark", "ce.grade", "ce.paid", "ce.date_enrolled", "ce.currently_taking",
	"ce.semester_enrolled", "ce.request_grade_change", "ce.request_grade_change_date",
	"ce.request_grade_change_time", "ce.programme_id",
	"c.title AS course_title", "c.course_code AS course_code", "c.level AS course_level",
}

// TranscriptRepository reads the student and enrollment data a transcript is built from.
type TranscriptRepository struct {
	db      *sqlx.DB
	metrics queryObserver
}

// NewTranscriptRepository constructs a TranscriptRepository.
func NewTranscriptRepository(db *sqlx.DB, metrics queryObserver) *TranscriptRepository {
	return &TranscriptRepository{db: db, metrics: metrics}
}

// FetchStudentMetadata returns the header data for a student, or nil when no row matches.
func (r *TranscriptRepository) FetchStudentMetadata(ctx context.Context, studentID int64) (*models.StudentMeta, error) {
	query, args, err := statementBuilder(r.db).
		Select("s.student_id", "u.first_name", "u.last_name", "p.name AS programme").
		From("student s").
		Join("users u ON s.id = u.id").
		Join("course_enrollment ce ON ce.student_id = s.id").
		Join("programme p ON ce.programme_id = p.id").
		Where(sq.Eq{"s.id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student metadata query: %w", err)
	}

	defer observe(r.metrics, "transcript_student_metadata", time.Now())
	var meta models.StudentMeta
	if err := r.db.GetContext(ctx, &meta, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch student metadata: %w", err)
	}
	return &meta, nil
}

// FetchCompletedEnrollments returns every completed enrollment of the student. Order is unspecified.
func (r *TranscriptRepository) FetchCompletedEnrollments(ctx context.Context, studentID int64) ([]models.EnrollmentRecord, error) {
	query, args, err := statementBuilder(r.db).
		Select(enrollmentColumns...).
		From("course_enrollment ce").
		Join("course c ON ce.course_id = c.id").
		Where("ce.completed = TRUE").
		Where(sq.Eq{"ce.student_id": studentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build enrollments query: %w", err)
	}

	defer observe(r.metrics, "transcript_completed_enrollments", time.Now())
	var records []models.EnrollmentRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("fetch completed enrollments: %w", err)
	}
	return records, nil
}
