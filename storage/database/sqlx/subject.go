package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/subject"
)

type subjectRepository struct {
	db *sqlx.DB
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *sqlx.DB) subject.Repository {
	return &subjectRepository{db: db}
}

type subjectRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	ClassroomID string    `db:"classroom_id"`
	TeacherID   string    `db:"teacher_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r subjectRow) toSubject() subject.Subject {
	return subject.Subject(r)
}

// mapWriteErr translates constraint violations on subject writes into the
// domain's sentinel errors.
func mapWriteErr(err error, op string) error {
	switch {
	case isPQError(err, pqUniqueViolation, "subjects_name_key"):
		return subject.ErrNameExists
	case isPQError(err, pqForeignKeyViolation), isPQError(err, "22P02"): // bad reference or invalid uuid input
		return subject.ErrBadReference
	}
	return errors.Wrap(err, op)
}

func (repo *subjectRepository) CreateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO subjects (id, name, classroom_id, teacher_id, created_at, updated_at)
		VALUES (:id, :name, :classroom_id, :teacher_id, :created_at, :updated_at)`,
		subjectRow(sub),
	)
	if err != nil {
		return subject.Subject{}, mapWriteErr(err, "inserting subject")
	}
	return sub, nil
}

func (repo *subjectRepository) QuerySubjects(ctx context.Context, offset, limit int) ([]subject.Subject, error) {
	var rows []subjectRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM subjects ORDER BY created_at, id OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	subs := make([]subject.Subject, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, row.toSubject())
	}
	return subs, nil
}

func (repo *subjectRepository) CountSubjects(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM subjects`); err != nil {
		return 0, errors.Wrap(err, "counting subjects")
	}
	return count, nil
}

func (repo *subjectRepository) GetSubjectByID(ctx context.Context, id string) (subject.Subject, error) {
	var row subjectRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM subjects WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows || isPQError(err, "22P02") { // invalid uuid input
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, errors.Wrap(err, "getting subject by id")
	}
	return row.toSubject(), nil
}

func (repo *subjectRepository) UpdateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE subjects
		SET name = :name, classroom_id = :classroom_id, teacher_id = :teacher_id, updated_at = :updated_at
		WHERE id = :id`,
		subjectRow(sub),
	)
	if err != nil {
		return subject.Subject{}, mapWriteErr(err, "updating subject")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return subject.Subject{}, subject.ErrNotFound
	}
	return sub, nil
}

func (repo *subjectRepository) DeleteSubject(ctx context.Context, id string) (subject.Subject, error) {
	var row subjectRow
	err := repo.db.GetContext(ctx, &row, `DELETE FROM subjects WHERE id = $1 RETURNING *`, id)
	if err != nil {
		if err == sql.ErrNoRows || isPQError(err, "22P02") {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, errors.Wrap(err, "deleting subject")
	}
	return row.toSubject(), nil
}
