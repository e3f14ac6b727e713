package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/shulehub/shule/core/classroom"
)

type classroomRepository struct {
	db *DB
}

var _ classroom.Repository = (*classroomRepository)(nil) // interface compliance check

func NewClassroomRepository(db *DB) classroom.Repository {
	return &classroomRepository{db: db}
}

func (repo *classroomRepository) CreateClassroom(_ context.Context, room classroom.Classroom) (classroom.Classroom, error) {
	repo.db.classroom.Lock()
	defer repo.db.classroom.Unlock()

	for _, r := range repo.db.classroom.rows {
		if r.Name == room.Name {
			return classroom.Classroom{}, classroom.ErrNameExists
		}
	}

	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	repo.db.classroom.rows[room.ID] = &room
	repo.db.classroom.order = append(repo.db.classroom.order, room.ID)
	return room, nil
}

func (repo *classroomRepository) QueryClassrooms(_ context.Context, offset, limit int) ([]classroom.Classroom, error) {
	repo.db.classroom.RLock()
	defer repo.db.classroom.RUnlock()

	rooms := make([]classroom.Classroom, 0, limit)
	for _, id := range paginate(repo.db.classroom.order, offset, limit) {
		rooms = append(rooms, *repo.db.classroom.rows[id])
	}
	return rooms, nil
}

func (repo *classroomRepository) CountClassrooms(_ context.Context) (int64, error) {
	repo.db.classroom.RLock()
	defer repo.db.classroom.RUnlock()
	return int64(len(repo.db.classroom.rows)), nil
}

func (repo *classroomRepository) GetClassroomByID(_ context.Context, id string) (classroom.Classroom, error) {
	repo.db.classroom.RLock()
	defer repo.db.classroom.RUnlock()

	if room, ok := repo.db.classroom.rows[id]; ok {
		return *room, nil
	}
	return classroom.Classroom{}, classroom.ErrNotFound
}

func (repo *classroomRepository) UpdateClassroom(_ context.Context, room classroom.Classroom) (classroom.Classroom, error) {
	repo.db.classroom.Lock()
	defer repo.db.classroom.Unlock()

	if _, ok := repo.db.classroom.rows[room.ID]; !ok {
		return classroom.Classroom{}, classroom.ErrNotFound
	}
	for id, r := range repo.db.classroom.rows {
		if r.Name == room.Name && id != room.ID {
			return classroom.Classroom{}, classroom.ErrNameExists
		}
	}
	repo.db.classroom.rows[room.ID] = &room
	return room, nil
}

func (repo *classroomRepository) DeleteClassroom(_ context.Context, id string) (classroom.Classroom, error) {
	// mirrors the subjects_classroom_id_fkey RESTRICT constraint
	repo.db.subject.RLock()
	for _, sub := range repo.db.subject.rows {
		if sub.ClassroomID == id {
			repo.db.subject.RUnlock()
			return classroom.Classroom{}, classroom.ErrInUse
		}
	}
	repo.db.subject.RUnlock()

	repo.db.classroom.Lock()
	defer repo.db.classroom.Unlock()

	room, ok := repo.db.classroom.rows[id]
	if !ok {
		return classroom.Classroom{}, classroom.ErrNotFound
	}
	delete(repo.db.classroom.rows, id)
	repo.db.classroom.order = remove(repo.db.classroom.order, id)
	return *room, nil
}
