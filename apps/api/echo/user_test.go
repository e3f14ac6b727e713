package echoapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/user"
)

func Test_userAPI_login(t *testing.T) {
	env := setup(t)
	student := env.createUser(t, "Hero", "Mwamba", "hero@test.cd", "LolC@t123", user.RoleStudent)

	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown email", wantCode: http.StatusUnauthorized,
			body:     marchallObj(t, LoginRequest{Email: "ghost@test.cd", Password: "LolC@t123"}),
			wantData: marchallObj(t, errBadCredsBody),
		},
		{
			name: "wrong password", wantCode: http.StatusUnauthorized,
			body:     marchallObj(t, LoginRequest{Email: student.Email, Password: "nope-nope"}),
			wantData: marchallObj(t, errBadCredsBody),
		},
		{
			name: "email match is exact", wantCode: http.StatusUnauthorized,
			body:     marchallObj(t, LoginRequest{Email: "HERO@Test.CD", Password: "LolC@t123"}),
			wantData: marchallObj(t, errBadCredsBody),
		},
		{
			name: "surrounding whitespace is trimmed", wantCode: http.StatusOK,
			body: marchallObj(t, LoginRequest{Email: "  hero@test.cd  ", Password: "LolC@t123"}),
		},
		{
			name: "success", wantCode: http.StatusOK,
			body: marchallObj(t, LoginRequest{Email: student.Email, Password: "LolC@t123"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/user/login"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			env.app.ServeHTTP(rec, req)

			// cannot guess the token.. just check that it's not empty
			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Errorf("json.Unmarshal(): %v", err)
				}
				if respData.Token == "" {
					t.Error("failed! empty token")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

// a failed login must not reveal whether the email exists
func Test_userAPI_login_noAccountEnumeration(t *testing.T) {
	env := setup(t)
	student := env.createUser(t, "Hero", "Mwamba", "hero@test.cd", "LolC@t123", user.RoleStudent)

	req1, rec1 := newRequest(http.MethodPost, "/user/login", marchallObj(t, LoginRequest{Email: "ghost@test.cd", Password: "LolC@t123"}))
	env.app.ServeHTTP(rec1, req1)

	req2, rec2 := newRequest(http.MethodPost, "/user/login", marchallObj(t, LoginRequest{Email: student.Email, Password: "wrong-pwd"}))
	env.app.ServeHTTP(rec2, req2)

	if rec1.Code != rec2.Code {
		t.Errorf("failed! codes differ: %v != %v", rec1.Code, rec2.Code)
	}
	if !bytes.Equal(rec1.Body.Bytes(), rec2.Body.Bytes()) {
		t.Errorf("failed! bodies differ: %q != %q", rec1.Body.String(), rec2.Body.String())
	}
}

func Test_userAPI_list(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "Admin", "Kalala", "admin@test.cd", "LolC@t123", user.RoleAdmin)
	teacher := env.createUser(t, "Teacher", "Ilunga", "teacher@test.cd", "LolC@t123", user.RoleTeacher)
	student := env.createUser(t, "Hero", "Mwamba", "hero@test.cd", "LolC@t123", user.RoleStudent)
	parent := env.createUser(t, "Parent", "Mwamba", "parent@test.cd", "LolC@t123", user.RoleParent, student.ID)

	all := []user.User{admin, teacher, student, parent}

	tests := []httpTest{
		{name: "Auth required", path: "/user", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody)},
		{name: "Garbage token", path: "/user", token: "lol", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody)},
		{
			name: "Student not allowed", path: "/user", token: env.getToken(t, student),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Parent not allowed", path: "/user", token: env.getToken(t, parent),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Teacher can list", path: "/user", token: env.getToken(t, teacher), wantCode: http.StatusOK,
			wantData: marchallObj(t, core.NewPage(all, 4, core.PageQuery{Page: 1, Limit: 10})),
		},
		{
			name: "Admin can list", path: "/user", token: env.getToken(t, admin), wantCode: http.StatusOK,
			wantData: marchallObj(t, core.NewPage(all, 4, core.PageQuery{Page: 1, Limit: 10})),
		},
		{
			name: "Second page", path: "/user?page=2&limit=3", token: env.getToken(t, admin), wantCode: http.StatusOK,
			wantData: marchallObj(t, core.NewPage([]user.User{parent}, 4, core.PageQuery{Page: 2, Limit: 3})),
		},
		{
			name: "Page past the end", path: "/user?page=9&limit=3", token: env.getToken(t, admin), wantCode: http.StatusOK,
			wantData: marchallObj(t, core.NewPage([]user.User{}, 4, core.PageQuery{Page: 9, Limit: 3})),
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

func Test_userAPI_retrieve(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "Admin", "Kalala", "admin@test.cd", "LolC@t123", user.RoleAdmin)
	teacher := env.createUser(t, "Teacher", "Ilunga", "teacher@test.cd", "LolC@t123", user.RoleTeacher)
	student := env.createUser(t, "Hero", "Mwamba", "hero@test.cd", "LolC@t123", user.RoleStudent)
	other := env.createUser(t, "Other", "Ngalula", "other@test.cd", "LolC@t123", user.RoleStudent)

	tests := []httpTest{
		{
			name: "Auth required", path: "/user/" + student.ID,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Student can read self", path: "/user/" + student.ID, token: env.getToken(t, student),
			wantCode: http.StatusOK, wantData: marchallObj(t, student),
		},
		{
			name: "Student cannot read others", path: "/user/" + other.ID, token: env.getToken(t, student),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Teacher can read others", path: "/user/" + other.ID, token: env.getToken(t, teacher),
			wantCode: http.StatusOK, wantData: marchallObj(t, other),
		},
		{
			name: "Admin can read others", path: "/user/" + other.ID, token: env.getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, other),
		},
		{
			name: "Unknown id", path: "/user/60c72b2f9b1e8a001c8e4d5a", token: env.getToken(t, admin),
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

func Test_userAPI_create(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "Admin", "Kalala", "admin@test.cd", "LolC@t123", user.RoleAdmin)
	teacher := env.createUser(t, "Teacher", "Ilunga", "teacher@test.cd", "LolC@t123", user.RoleTeacher)
	adminToken := env.getToken(t, admin)

	newUsr := func(email string) []byte {
		return marchallObj(t, user.NewUser{
			Email:     email,
			Password:  "LolC@t123",
			FirstName: "New",
			LastName:  "Kid",
			Role:      user.RoleStudent,
		})
	}

	tests := []httpTest{
		{
			name: "Auth required", body: newUsr("kid@test.cd"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Admin required", token: env.getToken(t, teacher), body: newUsr("kid@test.cd"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "required fields", token: adminToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"email":     "this field is required",
				"password":  "this field is required",
				"firstName": "this field is required",
				"lastName":  "this field is required",
				"role":      "this field is required",
			}),
		},
		{
			name: "invalid email", token: adminToken, wantCode: http.StatusBadRequest,
			body: marchallObj(t, user.NewUser{
				Email: "lol", Password: "LolC@t123", FirstName: "New", LastName: "Kid", Role: user.RoleStudent,
			}),
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "invalid role", token: adminToken, wantCode: http.StatusBadRequest,
			body: marchallObj(t, map[string]string{
				"email": "kid@test.cd", "password": "LolC@t123", "firstName": "New", "lastName": "Kid", "role": "HEADMASTER",
			}),
			wantData: marchallObj(t, map[string]string{"role": "must be one of STUDENT, TEACHER, PARENT or ADMIN"}),
		},
		{
			name: "duplicate email", token: adminToken, body: newUsr(admin.Email),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "a user with this email already exists"}),
		},
		{name: "created", token: adminToken, body: newUsr("Kid.Junior@Test.CD"), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/user"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData user.User
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Errorf("json.Unmarshal(): %v", err)
				}
				if respData.ID == "" {
					t.Error("failed! empty id")
				}
				// email case is preserved as supplied
				if respData.Email != "Kid.Junior@Test.CD" {
					t.Errorf("failed! email = %q", respData.Email)
				}
				// the password must never appear in a response
				if body := strings.ToLower(rec.Body.String()); strings.Contains(body, "password") {
					t.Errorf("failed! response leaks the password: %v", rec.Body.String())
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userAPI_update(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "Admin", "Kalala", "admin@test.cd", "LolC@t123", user.RoleAdmin)
	teacher := env.createUser(t, "Teacher", "Ilunga", "teacher@test.cd", "LolC@t123", user.RoleTeacher)
	student := env.createUser(t, "Hero", "Mwamba", "hero@test.cd", "LolC@t123", user.RoleStudent)
	adminToken := env.getToken(t, admin)

	body := marchallObj(t, user.UpdateUser{FirstName: "Renamed"})

	tests := []httpTest{
		{
			name: "Auth required", path: "/user/" + student.ID, body: body,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Admin required", path: "/user/" + student.ID, token: env.getToken(t, teacher), body: body,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Unknown id", path: "/user/60c72b2f9b1e8a001c8e4d5a", token: adminToken, body: body,
			wantCode: http.StatusNotFound, wantData: []byte("{}"),
		},
		{name: "updated", path: "/user/" + student.ID, token: adminToken, body: body, wantCode: http.StatusOK},
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
				var respData user.User
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Errorf("json.Unmarshal(): %v", err)
				}
				// untouched fields survive a partial update
				if respData.FirstName != "Renamed" || respData.LastName != student.LastName || respData.Email != student.Email {
					t.Errorf("failed! merged record = %+v", respData)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userAPI_destroy(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "Admin", "Kalala", "admin@test.cd", "LolC@t123", user.RoleAdmin)
	teacher := env.createUser(t, "Teacher", "Ilunga", "teacher@test.cd", "LolC@t123", user.RoleTeacher)
	student := env.createUser(t, "Hero", "Mwamba", "hero@test.cd", "LolC@t123", user.RoleStudent)
	adminToken := env.getToken(t, admin)

	room := env.createClassroom(t, "Form 1A")
	env.createSubject(t, "Mathematics", room.ID, teacher.ID)

	tests := []httpTest{
		{
			name: "Auth required", path: "/user/" + student.ID,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		// a teacher assigned to a subject cannot be removed
		{
			name: "Referenced by a subject", path: "/user/" + teacher.ID, token: adminToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "user is referenced by a subject"}),
		},
		{
			name: "Admin required", path: "/user/" + student.ID, token: env.getToken(t, teacher),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody),
		},
		{
			name: "Unknown id", path: "/user/60c72b2f9b1e8a001c8e4d5a", token: adminToken,
			wantCode: http.StatusNotFound, wantData: []byte("{}"),
		},
		// the deleted record is echoed back
		{name: "deleted", path: "/user/" + student.ID, token: adminToken, wantCode: http.StatusOK, wantData: marchallObj(t, student)},
		// a second delete finds nothing
		{name: "already gone", path: "/user/" + student.ID, token: adminToken, wantCode: http.StatusNotFound, wantData: []byte("{}")},
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

// a deleted account's still-valid token no longer authenticates
func Test_userAPI_tokenOfDeletedUser(t *testing.T) {
	env := setup(t)
	student := env.createUser(t, "Hero", "Mwamba", "hero@test.cd", "LolC@t123", user.RoleStudent)
	studentToken := env.getToken(t, student)

	if _, err := env.usrSvc.Delete(testCtx(t), student.ID); err != nil {
		t.Fatalf("Delete(): %v", err)
	}

	req, rec := newAuthRequest(http.MethodGet, fmt.Sprintf("/user/%s", student.ID), studentToken)
	env.app.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthorizedBody)}
	checkCodeAndData(t, tt, rec)
}
