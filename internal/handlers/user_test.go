package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"bookcourier/internal/models"
	"bookcourier/internal/store"
)

func TestCreateUserNewAccount(t *testing.T) {
	var created *models.User
	users := &fakeUserStore{
		createFunc: func(ctx context.Context, user models.User) (string, error) {
			created = &user
			return "64f000000000000000000001", nil
		},
	}

	c, w := testContext(t, "POST", "/users", map[string]interface{}{
		"displayName": "Ada",
		"email":       "ada@example.com",
		"photoURL":    "https://img.example.com/ada.png",
	})

	CreateUser(users)(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if created.Role != "user" {
		t.Fatalf("expected default role user, got %q", created.Role)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}
}

func TestCreateUserAlreadyExists(t *testing.T) {
	calls := 0
	users := &fakeUserStore{
		createFunc: func(ctx context.Context, user models.User) (string, error) {
			calls++
			return "", store.ErrUserExists
		},
	}

	c, w := testContext(t, "POST", "/users", map[string]interface{}{
		"email": "ada@example.com",
	})

	CreateUser(users)(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected soft 200 for existing user, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "user exists") {
		t.Fatalf("expected user exists message, got %s", w.Body.String())
	}
	if calls != 1 {
		t.Fatalf("expected a single store call, got %d", calls)
	}
}

func TestCreateUserInvalidBody(t *testing.T) {
	users := &fakeUserStore{
		createFunc: func(ctx context.Context, user models.User) (string, error) {
			t.Fatal("Create must not be called for an invalid body")
			return "", nil
		},
	}

	c, w := testContext(t, "POST", "/users", map[string]interface{}{
		"displayName": "no email",
	})

	CreateUser(users)(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetUserUnknownEmailReturnsNull(t *testing.T) {
	users := &fakeUserStore{}

	c, w := testContext(t, "GET", "/users/nobody@example.com", nil)
	c.Params = append(c.Params, paramOf("email", "nobody@example.com"))

	GetUser(users)(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown email, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "null" {
		t.Fatalf("expected null body, got %s", w.Body.String())
	}
}

func TestUpdateUserProfileInvalidID(t *testing.T) {
	users := &fakeUserStore{}

	c, w := testContext(t, "PATCH", "/user/not-an-id", map[string]interface{}{
		"displayName": "Ada",
	})
	c.Params = append(c.Params, paramOf("id", "not-an-id"))

	UpdateUserProfile(users)(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", w.Code)
	}
}
