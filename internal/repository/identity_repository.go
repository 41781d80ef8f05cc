package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// IdentityRepository maps authenticated subjects to student records.
type IdentityRepository struct {
	db      *sqlx.DB
	metrics queryObserver
}

// NewIdentityRepository constructs an IdentityRepository.
func NewIdentityRepository(db *sqlx.DB, metrics queryObserver) *IdentityRepository {
	return &IdentityRepository{db: db, metrics: metrics}
}

// FindStudentIDByEmail returns the student id of the user with the given email.
// It returns sql.ErrNoRows when the email belongs to no student.
func (r *IdentityRepository) FindStudentIDByEmail(ctx context.Context, email string) (int64, error) {
	query, args, err := statementBuilder(r.db).
		Select("s.id").
		From("student s").
		Join("users u ON s.id = u.id").
		Where(sq.Eq{"u.email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, err
	}

	defer observe(r.metrics, "identity_student_by_email", time.Now())
	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, err
	}
	return id, nil
}

