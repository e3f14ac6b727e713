package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/shulehub/shule/core"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
	ErrInUse       = errors.New("user is referenced by a subject")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		// QueryUsers returns the [offset, offset+limit) slice of all users in
		// insertion order.
		QueryUsers(ctx context.Context, offset, limit int) ([]User, error)
		CountUsers(ctx context.Context) (int64, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		// DeleteUser removes a user and returns its last state.
		DeleteUser(ctx context.Context, id string) (User, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Email:     nu.Email,
		FirstName: nu.FirstName,
		LastName:  nu.LastName,
		Role:      nu.Role,
		Children:  nu.Children,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return User{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return User{}, err
	}

	svc.sendWelcomeEmail(usr)
	return usr, nil
}

func (svc *Service) List(ctx context.Context, q core.PageQuery) (core.Page[User], error) {
	q.Clean()
	users, err := svc.repo.QueryUsers(ctx, q.Offset(), q.Limit)
	if err != nil {
		return core.Page[User]{}, err
	}
	total, err := svc.repo.CountUsers(ctx)
	if err != nil {
		return core.Page[User]{}, err
	}
	return core.NewPage(users, total, q), nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email))
}

// Update merges the supplied fields into the existing user; omitted fields
// keep their current values.
func (svc *Service) Update(ctx context.Context, id string, uu UpdateUser) (User, error) {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if uu.Email != "" {
		usr.Email = uu.Email
	}
	if uu.FirstName != "" {
		usr.FirstName = uu.FirstName
	}
	if uu.LastName != "" {
		usr.LastName = uu.LastName
	}
	if uu.Role != "" {
		usr.Role = uu.Role
	}
	if uu.Children != nil {
		usr.Children = uu.Children
	}
	if uu.Password != "" {
		if err = usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	usr.UpdatedAt = time.Now().UTC()

	usr, err = svc.repo.UpdateUser(ctx, usr)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return User{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return User{}, err
	}
	return usr, nil
}

func (svc *Service) Delete(ctx context.Context, id string) (User, error) {
	usr, err := svc.repo.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrInUse) {
			return User{}, core.NewValidationError(err)
		}
		return User{}, err
	}
	return usr, nil
}

func (svc *Service) sendWelcomeEmail(usr User) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.FirstName + " " + usr.LastName, Address: usr.Email}},
		Subject: "Welcome aboard!",
		BodyStr: fmt.Sprintf("Hi %s,\n\nYour %s account was created. You can now log in with your email address.", usr.FirstName, usr.Role),
	})
}
