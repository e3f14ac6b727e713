package classroom

import (
	"time"

	"github.com/shulehub/shule/core"
)

type Classroom struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

// NewClassroom contains information needed to create a new Classroom.
type NewClassroom struct {
	Name string `json:"name" validate:"required,min=3"`
}

func (nc *NewClassroom) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

// UpdateClassroom defines what information may be provided to modify an
// existing Classroom.
type UpdateClassroom struct {
	Name string `json:"name" validate:"omitempty,min=3"`
}

func (uc *UpdateClassroom) Validate() error {
	uc.Name = core.CleanString(uc.Name)
	return core.Validate.Struct(uc)
}
