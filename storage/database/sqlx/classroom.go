package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/classroom"
)

type classroomRepository struct {
	db *sqlx.DB
}

var _ classroom.Repository = (*classroomRepository)(nil) // interface compliance check

func NewClassroomRepository(db *sqlx.DB) classroom.Repository {
	return &classroomRepository{db: db}
}

type classroomRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r classroomRow) toClassroom() classroom.Classroom {
	return classroom.Classroom(r)
}

func (repo *classroomRepository) CreateClassroom(ctx context.Context, room classroom.Classroom) (classroom.Classroom, error) {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO classrooms (id, name, created_at, updated_at)
		VALUES (:id, :name, :created_at, :updated_at)`,
		classroomRow(room),
	)
	if err != nil {
		if isPQError(err, pqUniqueViolation, "classrooms_name_key") {
			return classroom.Classroom{}, classroom.ErrNameExists
		}
		return classroom.Classroom{}, errors.Wrap(err, "inserting classroom")
	}
	return room, nil
}

func (repo *classroomRepository) QueryClassrooms(ctx context.Context, offset, limit int) ([]classroom.Classroom, error) {
	var rows []classroomRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM classrooms ORDER BY created_at, id OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying classrooms")
	}
	rooms := make([]classroom.Classroom, 0, len(rows))
	for _, row := range rows {
		rooms = append(rooms, row.toClassroom())
	}
	return rooms, nil
}

func (repo *classroomRepository) CountClassrooms(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM classrooms`); err != nil {
		return 0, errors.Wrap(err, "counting classrooms")
	}
	return count, nil
}

func (repo *classroomRepository) GetClassroomByID(ctx context.Context, id string) (classroom.Classroom, error) {
	var row classroomRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM classrooms WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows || isPQError(err, "22P02") { // invalid uuid input
			return classroom.Classroom{}, classroom.ErrNotFound
		}
		return classroom.Classroom{}, errors.Wrap(err, "getting classroom by id")
	}
	return row.toClassroom(), nil
}

func (repo *classroomRepository) UpdateClassroom(ctx context.Context, room classroom.Classroom) (classroom.Classroom, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE classrooms SET name = :name, updated_at = :updated_at WHERE id = :id`,
		classroomRow(room),
	)
	if err != nil {
		if isPQError(err, pqUniqueViolation, "classrooms_name_key") {
			return classroom.Classroom{}, classroom.ErrNameExists
		}
		return classroom.Classroom{}, errors.Wrap(err, "updating classroom")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return classroom.Classroom{}, classroom.ErrNotFound
	}
	return room, nil
}

func (repo *classroomRepository) DeleteClassroom(ctx context.Context, id string) (classroom.Classroom, error) {
	var row classroomRow
	err := repo.db.GetContext(ctx, &row, `DELETE FROM classrooms WHERE id = $1 RETURNING *`, id)
	if err != nil {
		if err == sql.ErrNoRows || isPQError(err, "22P02") {
			return classroom.Classroom{}, classroom.ErrNotFound
		}
		if isPQError(err, pqForeignKeyViolation, "subjects_classroom_id_fkey") {
			return classroom.Classroom{}, classroom.ErrInUse
		}
		return classroom.Classroom{}, errors.Wrap(err, "deleting classroom")
	}
	return row.toClassroom(), nil
}
