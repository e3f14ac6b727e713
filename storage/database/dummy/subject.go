package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/shulehub/shule/core/subject"
)

type subjectRepository struct {
	db *DB
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{db: db}
}

// checkReferences mirrors the SQL foreign key constraints on subjects.
func (repo *subjectRepository) checkReferences(sub subject.Subject) error {
	repo.db.classroom.RLock()
	_, roomOK := repo.db.classroom.rows[sub.ClassroomID]
	repo.db.classroom.RUnlock()

	repo.db.user.RLock()
	_, teacherOK := repo.db.user.rows[sub.TeacherID]
	repo.db.user.RUnlock()

	if !roomOK || !teacherOK {
		return subject.ErrBadReference
	}
	return nil
}

func (repo *subjectRepository) CreateSubject(_ context.Context, sub subject.Subject) (subject.Subject, error) {
	if err := repo.checkReferences(sub); err != nil {
		return subject.Subject{}, err
	}

	repo.db.subject.Lock()
	defer repo.db.subject.Unlock()

	for _, s := range repo.db.subject.rows {
		if s.Name == sub.Name {
			return subject.Subject{}, subject.ErrNameExists
		}
	}

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	repo.db.subject.rows[sub.ID] = &sub
	repo.db.subject.order = append(repo.db.subject.order, sub.ID)
	return sub, nil
}

func (repo *subjectRepository) QuerySubjects(_ context.Context, offset, limit int) ([]subject.Subject, error) {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()

	subs := make([]subject.Subject, 0, limit)
	for _, id := range paginate(repo.db.subject.order, offset, limit) {
		subs = append(subs, *repo.db.subject.rows[id])
	}
	return subs, nil
}

func (repo *subjectRepository) CountSubjects(_ context.Context) (int64, error) {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()
	return int64(len(repo.db.subject.rows)), nil
}

func (repo *subjectRepository) GetSubjectByID(_ context.Context, id string) (subject.Subject, error) {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()

	if sub, ok := repo.db.subject.rows[id]; ok {
		return *sub, nil
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *subjectRepository) UpdateSubject(_ context.Context, sub subject.Subject) (subject.Subject, error) {
	if err := repo.checkReferences(sub); err != nil {
		return subject.Subject{}, err
	}

	repo.db.subject.Lock()
	defer repo.db.subject.Unlock()

	if _, ok := repo.db.subject.rows[sub.ID]; !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	for id, s := range repo.db.subject.rows {
		if s.Name == sub.Name && id != sub.ID {
			return subject.Subject{}, subject.ErrNameExists
		}
	}
	repo.db.subject.rows[sub.ID] = &sub
	return sub, nil
}

func (repo *subjectRepository) DeleteSubject(_ context.Context, id string) (subject.Subject, error) {
	repo.db.subject.Lock()
	defer repo.db.subject.Unlock()

	sub, ok := repo.db.subject.rows[id]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	delete(repo.db.subject.rows, id)
	repo.db.subject.order = remove(repo.db.subject.order, id)
	return *sub, nil
}
