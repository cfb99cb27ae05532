package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRegisterCustomer(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/register/customer/", "", gin.H{
		"email":      "alice@example.com",
		"password":   "s3cret-pass",
		"first_name": "Alice",
		"last_name":  "Smith",
		"user_profile": gin.H{
			"other_name":    "Ally",
			"date_of_birth": "1990-05-17",
			"phone_number":  "0241234567",
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Message string `json:"message"`
		Status  bool   `json:"status"`
		User    struct {
			Email    string `json:"email"`
			Role     string `json:"role"`
			Password string `json:"password"`
		} `json:"user"`
		UserProfile *struct {
			DateOfBirth string `json:"date_of_birth"`
			Age         int    `json:"age"`
		} `json:"user_profile"`
	}
	s.decode(w, &body)
	if body.Message != "Customer account created successfully" || !body.Status {
		t.Errorf("unexpected envelope: %+v", body)
	}
	if body.User.Email != "alice@example.com" || body.User.Role != "customer" || body.User.Password != "" {
		t.Errorf("unexpected user payload: %+v", body.User)
	}
	if body.UserProfile == nil || body.UserProfile.DateOfBirth != "1990-05-17" || body.UserProfile.Age < 30 {
		t.Errorf("unexpected profile payload: %+v", body.UserProfile)
	}
}

func TestRegister_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"missing email", gin.H{"password": "s3cret-pass", "first_name": "A", "last_name": "B"}, "email"},
		{"bad email", gin.H{"email": "nope", "password": "s3cret-pass", "first_name": "A", "last_name": "B"}, "email"},
		{"short password", gin.H{"email": "a@example.com", "password": "x", "first_name": "A", "last_name": "B"}, "password"},
		{"profile phone too long", gin.H{
			"email": "a@example.com", "password": "s3cret-pass", "first_name": "A", "last_name": "B",
			"user_profile": gin.H{"other_name": "A", "date_of_birth": "1990-01-01", "phone_number": "012345678901"},
		}, "user_profile.phone_number"},
		{"profile bad date", gin.H{
			"email": "a@example.com", "password": "s3cret-pass", "first_name": "A", "last_name": "B",
			"user_profile": gin.H{"other_name": "A", "date_of_birth": "01/01/1990", "phone_number": "0123456789"},
		}, "user_profile.date_of_birth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := s.expect(s.do(http.MethodPost, "/register/owner/", "", tt.body), http.StatusBadRequest)
			if env.Status {
				t.Error("expected status false")
			}
			found := false
			for _, e := range env.Errors {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got %+v", tt.field, env.Errors)
			}
		})
	}

	s.expect(s.do(http.MethodPost, "/register/owner/", "", "{not json"), http.StatusBadRequest)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	s.register("customer", "alice@example.com")

	env := s.expect(s.do(http.MethodPost, "/register/owner/", "", gin.H{
		"email": "alice@example.com", "password": "s3cret-pass", "first_name": "A", "last_name": "B",
	}), http.StatusBadRequest)
	if env.Msg != "User with this email already exists" {
		t.Errorf("unexpected message %q", env.Msg)
	}
}

func TestLoginLogoutAndMe(t *testing.T) {
	s := newTestServer(t)
	token := s.register("customer", "alice@example.com")

	env := s.expect(s.do(http.MethodGet, "/users/me/", token, nil), http.StatusOK)
	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	json.Unmarshal(env.Data, &me)
	if me.Email != "alice@example.com" || me.Role != "customer" {
		t.Errorf("unexpected /users/me payload: %s", env.Data)
	}

	s.expect(s.do(http.MethodPost, "/auth/login/", "", gin.H{"email": "alice@example.com", "password": "wrong-pass"}), http.StatusUnauthorized)
	s.expect(s.do(http.MethodGet, "/users/me/", "", nil), http.StatusUnauthorized)

	s.expect(s.do(http.MethodPost, "/auth/logout/", token, nil), http.StatusOK)
	s.expect(s.do(http.MethodGet, "/users/me/", token, nil), http.StatusUnauthorized)
}

func TestUpdateRole(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.register("customer", "admin@example.com")
	s.makeAdmin("admin@example.com")
	plainToken := s.register("customer", "plain@example.com")
	s.register("customer", "target@example.com")
	target := s.userID("target@example.com")
	path := fmt.Sprintf("/update_role/%d/", target)

	s.expect(s.do(http.MethodPatch, path, plainToken, gin.H{"role": "owner"}), http.StatusForbidden)
	s.expect(s.do(http.MethodPatch, path, plainToken, gin.H{"role": "emperor"}), http.StatusForbidden)
	s.expect(s.do(http.MethodPatch, path, plainToken, "{not json"), http.StatusForbidden)
	s.expect(s.do(http.MethodPatch, path, adminToken, gin.H{"role": "emperor"}), http.StatusBadRequest)
	s.expect(s.do(http.MethodPatch, "/update_role/9999/", adminToken, gin.H{"role": "owner"}), http.StatusNotFound)

	env := s.expect(s.do(http.MethodPatch, path, adminToken, gin.H{"role": "owner"}), http.StatusOK)
	var user struct {
		Role string `json:"role"`
	}
	json.Unmarshal(env.Data, &user)
	if user.Role != "owner" {
		t.Errorf("expected owner role, got %s", user.Role)
	}

	env = s.expect(s.do(http.MethodPatch, path, adminToken, gin.H{"role": "owner"}), http.StatusBadRequest)
	if env.Msg != "User is already an owner" {
		t.Errorf("unexpected message %q", env.Msg)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
