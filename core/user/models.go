package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shulehub/shule/core"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleParent  Role = "PARENT"
	RoleAdmin   Role = "ADMIN"
)

var AllRoles = []Role{RoleStudent, RoleTeacher, RoleParent, RoleAdmin}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"role"`
	Children     []string  `json:"children"` // ordered User IDs; PARENT -> STUDENT links
	CreatedAt    time.Time `json:"createdAt"` // UTC
	UpdatedAt    time.Time `json:"updatedAt"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=4"`
	FirstName string   `json:"firstName" validate:"required,min=2"`
	LastName  string   `json:"lastName" validate:"required,min=2"`
	Role      Role     `json:"role" validate:"required,role"`
	Children  []string `json:"children"`
}

func (nu *NewUser) Validate() error {
	nu.Email = core.CleanString(nu.Email) // trim only; email case is preserved
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)
	return core.Validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing
// User; only supplied fields are merged into the record.
type UpdateUser struct {
	Email     string   `json:"email" validate:"omitempty,email"`
	Password  string   `json:"password" validate:"omitempty,min=4"`
	FirstName string   `json:"firstName" validate:"omitempty,min=2"`
	LastName  string   `json:"lastName" validate:"omitempty,min=2"`
	Role      Role     `json:"role" validate:"omitempty,role"`
	Children  []string `json:"children"`
}

func (uu *UpdateUser) Validate() error {
	uu.Email = core.CleanString(uu.Email)
	uu.FirstName = core.CleanString(uu.FirstName)
	uu.LastName = core.CleanString(uu.LastName)
	return core.Validate.Struct(uu)
}
