package subject

import (
	"context"
	"errors"
	"time"

	"github.com/shulehub/shule/core"
)

var (
	// errors
	ErrNotFound     = errors.New("subject not found")
	ErrNameExists   = errors.New("a subject with this name already exists")
	ErrBadReference = errors.New("classroom or teacher does not exist")
)

type (
	Repository interface {
		CreateSubject(ctx context.Context, sub Subject) (Subject, error)
		QuerySubjects(ctx context.Context, offset, limit int) ([]Subject, error)
		CountSubjects(ctx context.Context) (int64, error)
		GetSubjectByID(ctx context.Context, id string) (Subject, error)
		UpdateSubject(ctx context.Context, sub Subject) (Subject, error)
		DeleteSubject(ctx context.Context, id string) (Subject, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func wrapStoreErr(err error) error {
	switch {
	case errors.Is(err, ErrNameExists):
		return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
	case errors.Is(err, ErrBadReference):
		return core.NewValidationError(err)
	}
	return err
}

func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	now := time.Now().UTC()
	sub, err := svc.repo.CreateSubject(ctx, Subject{
		Name:        ns.Name,
		ClassroomID: ns.ClassroomID,
		TeacherID:   ns.TeacherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return Subject{}, wrapStoreErr(err)
	}
	return sub, nil
}

func (svc *Service) List(ctx context.Context, q core.PageQuery) (core.Page[Subject], error) {
	q.Clean()
	subs, err := svc.repo.QuerySubjects(ctx, q.Offset(), q.Limit)
	if err != nil {
		return core.Page[Subject]{}, err
	}
	total, err := svc.repo.CountSubjects(ctx)
	if err != nil {
		return core.Page[Subject]{}, err
	}
	return core.NewPage(subs, total, q), nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Subject, error) {
	return svc.repo.GetSubjectByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateSubject) (Subject, error) {
	sub, err := svc.repo.GetSubjectByID(ctx, id)
	if err != nil {
		return Subject{}, err
	}

	if us.Name != "" {
		sub.Name = us.Name
	}
	if us.ClassroomID != "" {
		sub.ClassroomID = us.ClassroomID
	}
	if us.TeacherID != "" {
		sub.TeacherID = us.TeacherID
	}
	sub.UpdatedAt = time.Now().UTC()

	sub, err = svc.repo.UpdateSubject(ctx, sub)
	if err != nil {
		return Subject{}, wrapStoreErr(err)
	}
	return sub, nil
}

func (svc *Service) Delete(ctx context.Context, id string) (Subject, error) {
	return svc.repo.DeleteSubject(ctx, id)
}
