package subject

import (
	"time"

	"github.com/shulehub/shule/core"
)

type Subject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ClassroomID string    `json:"classroom"`
	TeacherID   string    `json:"teacher"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
	UpdatedAt   time.Time `json:"updatedAt"` // UTC
}

// NewSubject contains information needed to create a new Subject. The
// classroom and teacher references must resolve to existing records; the
// persistence layer enforces this at creation time.
type NewSubject struct {
	Name        string `json:"name" validate:"required,min=3"`
	ClassroomID string `json:"classroom" validate:"required"`
	TeacherID   string `json:"teacher" validate:"required"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.ClassroomID = core.CleanString(ns.ClassroomID)
	ns.TeacherID = core.CleanString(ns.TeacherID)
	return core.Validate.Struct(ns)
}

// UpdateSubject defines what information may be provided to modify an
// existing Subject.
type UpdateSubject struct {
	Name        string `json:"name" validate:"omitempty,min=3"`
	ClassroomID string `json:"classroom"`
	TeacherID   string `json:"teacher"`
}

func (us *UpdateSubject) Validate() error {
	us.Name = core.CleanString(us.Name)
	us.ClassroomID = core.CleanString(us.ClassroomID)
	us.TeacherID = core.CleanString(us.TeacherID)
	return core.Validate.Struct(us)
}
