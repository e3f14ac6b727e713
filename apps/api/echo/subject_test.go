package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/subject"
	"github.com/shulehub/shule/core/user"
)

func Test_subjectAPI_list(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "Admin", "Kalala", "admin@test.cd", "LolC@t123", user.RoleAdmin)
	teacher := env.createUser(t, "Teacher", "Ilunga", "teacher@test.cd", "LolC@t123", user.RoleTeacher)
	student := env.createUser(t, "Hero", "Mwamba", "hero@test.cd", "LolC@t123", user.RoleStudent)
	room := env.createClassroom(t, "Form 1A")

	math := env.createSubject(t, "Mathematics", room.ID, teacher.ID)
	bio := env.createSubject(t, "Biology", room.ID, teacher.ID)

	all := []subject.Subject{math, bio}

	tests := []httpTest{
		{name: "Auth required", path: "/subject", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody)},
		{
			name: "Student not allowed", path: "/subject", token: env.getToken(t, student),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Teacher can list", path: "/subject", token: env.getToken(t, teacher), wantCode: http.StatusOK,
			wantData: marchallObj(t, core.NewPage(all, 2, core.PageQuery{Page: 1, Limit: 10})),
		},
		{
			name: "Admin can list", path: "/subject", token: env.getToken(t, admin), wantCode: http.StatusOK,
			wantData: marchallObj(t, core.NewPage(all, 2, core.PageQuery{Page: 1, Limit: 10})),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_subjectAPI_retrieve(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "Admin", "Kalala", "admin@test.cd", "LolC@t123", user.RoleAdmin)
	teacher := env.createUser(t, "Teacher", "Ilunga", "teacher@test.cd", "LolC@t123", user.RoleTeacher)
	room := env.createClassroom(t, "Form 1A")
	math := env.createSubject(t, "Mathematics", room.ID, teacher.ID)

	tests := []httpTest{
		{
			name: "Auth required", path: "/subject/" + math.ID,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "found", path: "/subject/" + math.ID, token: env.getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, math),
		},
		{
			name: "Unknown id", path: "/subject/60c72b2f9b1e8a001c8e4d5a", token: env.getToken(t, admin),
			wantCode: http.StatusNotFound, wantData: []byte("{}"),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_subjectAPI_create(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "Admin", "Kalala", "admin@test.cd", "LolC@t123", user.RoleAdmin)
	teacher := env.createUser(t, "Teacher", "Ilunga", "teacher@test.cd", "LolC@t123", user.RoleTeacher)
	adminToken := env.getToken(t, admin)
	room := env.createClassroom(t, "Form 1A")

	env.createSubject(t, "Mathematics", room.ID, teacher.ID)

	newSub := func(name, roomID, teacherID string) []byte {
		return marchallObj(t, subject.NewSubject{Name: name, ClassroomID: roomID, TeacherID: teacherID})
	}

	tests := []httpTest{
		{
			name: "Auth required", body: newSub("Biology", room.ID, teacher.ID),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Admin required", token: env.getToken(t, teacher), body: newSub("Biology", room.ID, teacher.ID),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "required fields", token: adminToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"name":      "this field is required",
				"classroom": "this field is required",
				"teacher":   "this field is required",
			}),
		},
		{
			name: "duplicate name", token: adminToken, body: newSub("Mathematics", room.ID, teacher.ID),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "a subject with this name already exists"}),
		},
		{
			name: "unknown classroom", token: adminToken, body: newSub("Biology", "60c72b2f9b1e8a001c8e4d5a", teacher.ID),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "classroom or teacher does not exist"}),
		},
		{
			name: "unknown teacher", token: adminToken, body: newSub("Biology", room.ID, "60c72b2f9b1e8a001c8e4d5a"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "classroom or teacher does not exist"}),
		},
		{name: "created", token: adminToken, body: newSub("Biology", room.ID, teacher.ID), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/subject"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData subject.Subject
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Errorf("json.Unmarshal(): %v", err)
				}
				if respData.ID == "" || respData.Name != "Biology" || respData.ClassroomID != room.ID || respData.TeacherID != teacher.ID {
					t.Errorf("failed! record = %+v", respData)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_subjectAPI_update(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "Admin", "Kalala", "admin@test.cd", "LolC@t123", user.RoleAdmin)
	teacher := env.createUser(t, "Teacher", "Ilunga", "teacher@test.cd", "LolC@t123", user.RoleTeacher)
	adminToken := env.getToken(t, admin)
	room := env.createClassroom(t, "Form 1A")
	math := env.createSubject(t, "Mathematics", room.ID, teacher.ID)

	tests := []httpTest{
		{
			name: "Auth required", path: "/subject/" + math.ID, body: marchallObj(t, subject.UpdateSubject{Name: "Maths"}),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Unknown id", path: "/subject/60c72b2f9b1e8a001c8e4d5a", token: adminToken,
			body:     marchallObj(t, subject.UpdateSubject{Name: "Maths"}),
			wantCode: http.StatusNotFound, wantData: []byte("{}"),
		},
		{
			name: "unknown classroom ref", path: "/subject/" + math.ID, token: adminToken,
			body:     marchallObj(t, subject.UpdateSubject{ClassroomID: "60c72b2f9b1e8a001c8e4d5a"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "classroom or teacher does not exist"}),
		},
		{name: "updated", path: "/subject/" + math.ID, token: adminToken, body: marchallObj(t, subject.UpdateSubject{Name: "Maths"}), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData subject.Subject
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Errorf("json.Unmarshal(): %v", err)
				}
				// references survive a name-only update
				if respData.Name != "Maths" || respData.ClassroomID != room.ID || respData.TeacherID != teacher.ID {
					t.Errorf("failed! record = %+v", respData)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_subjectAPI_destroy(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "Admin", "Kalala", "admin@test.cd", "LolC@t123", user.RoleAdmin)
	teacher := env.createUser(t, "Teacher", "Ilunga", "teacher@test.cd", "LolC@t123", user.RoleTeacher)
	adminToken := env.getToken(t, admin)
	room := env.createClassroom(t, "Form 1A")
	math := env.createSubject(t, "Mathematics", room.ID, teacher.ID)

	tests := []httpTest{
		{
			name: "Auth required", path: "/subject/" + math.ID,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Teacher not allowed", path: "/subject/" + math.ID, token: env.getToken(t, teacher),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Unknown id", path: "/subject/60c72b2f9b1e8a001c8e4d5a", token: adminToken,
			wantCode: http.StatusNotFound, wantData: []byte("{}"),
		},
		{name: "deleted", path: "/subject/" + math.ID, token: adminToken, wantCode: http.StatusOK, wantData: marchallObj(t, math)},
		{name: "already gone", path: "/subject/" + math.ID, token: adminToken, wantCode: http.StatusNotFound, wantData: []byte("{}")},
	}
	for _, tt := range tests {
		tt.method = http.MethodDelete

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
