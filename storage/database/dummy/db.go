// Package dummydb provides in-memory repositories mirroring the SQL
// implementations; it backs the test suites.
package dummydb

import (
	"sync"

	"github.com/shulehub/shule/core/classroom"
	"github.com/shulehub/shule/core/subject"
	"github.com/shulehub/shule/core/user"
)

type (
	DB struct {
		user      *userTable
		classroom *classroomTable
		subject   *subjectTable
	}

	userTable struct {
		sync.RWMutex
		rows  map[string]*user.User
		order []string // insertion order
	}

	classroomTable struct {
		sync.RWMutex
		rows  map[string]*classroom.Classroom
		order []string
	}

	subjectTable struct {
		sync.RWMutex
		rows  map[string]*subject.Subject
		order []string
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:      &userTable{rows: make(map[string]*user.User)},
		classroom: &classroomTable{rows: make(map[string]*classroom.Classroom)},
		subject:   &subjectTable{rows: make(map[string]*subject.Subject)},
	}
	return db, nil
}

// paginate returns the [offset, offset+limit) slice of ids; past-the-end
// pages yield an empty slice.
func paginate(order []string, offset, limit int) []string {
	if offset >= len(order) {
		return nil
	}
	end := offset + limit
	if end > len(order) {
		end = len(order)
	}
	return order[offset:end]
}

func remove(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
