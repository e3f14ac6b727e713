package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/shulehub/shule/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.user.Lock()
	defer repo.db.user.Unlock()

	for _, u := range repo.db.user.rows {
		if u.Email == usr.Email {
			return user.User{}, user.ErrEmailExists
		}
	}

	if usr.ID == "" {
		usr.ID = uuid.NewString()
	}
	repo.db.user.rows[usr.ID] = &usr
	repo.db.user.order = append(repo.db.user.order, usr.ID)
	return usr, nil
}

func (repo *userRepository) QueryUsers(_ context.Context, offset, limit int) ([]user.User, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	users := make([]user.User, 0, limit)
	for _, id := range paginate(repo.db.user.order, offset, limit) {
		users = append(users, *repo.db.user.rows[id])
	}
	return users, nil
}

func (repo *userRepository) CountUsers(_ context.Context) (int64, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()
	return int64(len(repo.db.user.rows)), nil
}

func (repo *userRepository) GetUserByID(_ context.Context, id string) (user.User, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	if usr, ok := repo.db.user.rows[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	for _, usr := range repo.db.user.rows {
		if usr.Email == email {
			return *usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.user.Lock()
	defer repo.db.user.Unlock()

	if _, ok := repo.db.user.rows[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	for id, u := range repo.db.user.rows {
		if u.Email == usr.Email && id != usr.ID {
			return user.User{}, user.ErrEmailExists
		}
	}
	repo.db.user.rows[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) DeleteUser(_ context.Context, id string) (user.User, error) {
	// mirrors the subjects_teacher_id_fkey RESTRICT constraint
	repo.db.subject.RLock()
	for _, sub := range repo.db.subject.rows {
		if sub.TeacherID == id {
			repo.db.subject.RUnlock()
			return user.User{}, user.ErrInUse
		}
	}
	repo.db.subject.RUnlock()

	repo.db.user.Lock()
	defer repo.db.user.Unlock()

	usr, ok := repo.db.user.rows[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	delete(repo.db.user.rows, id)
	repo.db.user.order = remove(repo.db.user.order, id)
	return *usr, nil
}
