package auth

import "github.com/shulehub/shule/core/user"

// Action enumerates every gated operation.
type Action int

const (
	ActionListUsers Action = iota
	ActionReadUser
	ActionCreateUser
	ActionUpdateUser
	ActionDeleteUser

	ActionListClassrooms
	ActionReadClassroom
	ActionCreateClassroom
	ActionUpdateClassroom
	ActionDeleteClassroom

	ActionListSubjects
	ActionReadSubject
	ActionCreateSubject
	ActionUpdateSubject
	ActionDeleteSubject
)

// Actor is the authenticated identity attached to a request.
type Actor struct {
	ID   string
	Role user.Role
}

// Allow decides whether the actor may perform the action. ownerID is the id
// of the targeted record's owner and only participates in ActionReadUser,
// where a user may read their own record. Allow is pure: no side effects
// occur on denial.
func Allow(action Action, actor Actor, ownerID string) bool {
	switch action {
	case ActionReadUser:
		return actor.Role == user.RoleAdmin || actor.Role == user.RoleTeacher || actor.ID == ownerID

	case ActionListUsers,
		ActionListClassrooms, ActionReadClassroom,
		ActionListSubjects, ActionReadSubject:
		return actor.Role == user.RoleAdmin || actor.Role == user.RoleTeacher

	case ActionCreateUser, ActionUpdateUser, ActionDeleteUser,
		ActionCreateClassroom, ActionUpdateClassroom, ActionDeleteClassroom,
		ActionCreateSubject, ActionUpdateSubject, ActionDeleteSubject:
		return actor.Role == user.RoleAdmin
	}
	return false
}
