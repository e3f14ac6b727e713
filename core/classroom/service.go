package classroom

import (
	"context"
	"errors"
	"time"

	"github.com/shulehub/shule/core"
)

var (
	// errors
	ErrNotFound   = errors.New("classroom not found")
	ErrNameExists = errors.New("a classroom with this name already exists")
	ErrInUse      = errors.New("classroom is referenced by a subject")
)

type (
	Repository interface {
		CreateClassroom(ctx context.Context, room Classroom) (Classroom, error)
		QueryClassrooms(ctx context.Context, offset, limit int) ([]Classroom, error)
		CountClassrooms(ctx context.Context) (int64, error)
		GetClassroomByID(ctx context.Context, id string) (Classroom, error)
		UpdateClassroom(ctx context.Context, room Classroom) (Classroom, error)
		DeleteClassroom(ctx context.Context, id string) (Classroom, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewClassroom) (Classroom, error) {
	now := time.Now().UTC()
	room, err := svc.repo.CreateClassroom(ctx, Classroom{
		Name:      nc.Name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, ErrNameExists) {
			return Classroom{}, core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return Classroom{}, err
	}
	return room, nil
}

func (svc *Service) List(ctx context.Context, q core.PageQuery) (core.Page[Classroom], error) {
	q.Clean()
	rooms, err := svc.repo.QueryClassrooms(ctx, q.Offset(), q.Limit)
	if err != nil {
		return core.Page[Classroom]{}, err
	}
	total, err := svc.repo.CountClassrooms(ctx)
	if err != nil {
		return core.Page[Classroom]{}, err
	}
	return core.NewPage(rooms, total, q), nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Classroom, error) {
	return svc.repo.GetClassroomByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, uc UpdateClassroom) (Classroom, error) {
	room, err := svc.repo.GetClassroomByID(ctx, id)
	if err != nil {
		return Classroom{}, err
	}

	if uc.Name != "" {
		room.Name = uc.Name
	}
	room.UpdatedAt = time.Now().UTC()

	room, err = svc.repo.UpdateClassroom(ctx, room)
	if err != nil {
		if errors.Is(err, ErrNameExists) {
			return Classroom{}, core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return Classroom{}, err
	}
	return room, nil
}

func (svc *Service) Delete(ctx context.Context, id string) (Classroom, error) {
	room, err := svc.repo.DeleteClassroom(ctx, id)
	if err != nil {
		if errors.Is(err, ErrInUse) {
			return Classroom{}, core.NewValidationError(err)
		}
		return Classroom{}, err
	}
	return room, nil
}
