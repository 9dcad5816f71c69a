package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestRegister(t *testing.T) {
	t.Run("Successful registration", func(t *testing.T) {
		e := newEnv(t)
		rr := e.do(t, "POST", "/register", "", map[string]string{
			"email":    "newuser@example.com",
			"password": "password123",
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusCreated, rr.Body.String())
		}
		if strings.Contains(rr.Body.String(), "password") {
			t.Error("response leaks password data")
		}

		u, err := e.users.FindByEmail(context.Background(), "newuser@example.com")
		if err != nil {
			t.Fatalf("registered user not stored: %v", err)
		}
		if u.PasswordHash == "" || u.PasswordHash == "password123" {
			t.Error("password stored unhashed")
		}
		if len(u.Notes) != 0 {
			t.Errorf("new user owns %d notes, want 0", len(u.Notes))
		}
	})

	t.Run("Duplicate email", func(t *testing.T) {
		e := newEnv(t)
		existing := e.seedUser(t, "taken@example.com", "originalpass")
		originalHash := existing.PasswordHash

		rr := e.do(t, "POST", "/register", "", map[string]string{
			"email":    "taken@example.com",
			"password": "different",
		})
		if rr.Code != http.StatusConflict {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusConflict)
		}

		u, err := e.users.FindByEmail(context.Background(), "taken@example.com")
		if err != nil {
			t.Fatalf("existing user gone: %v", err)
		}
		if u.PasswordHash != originalHash {
			t.Error("duplicate registration altered the stored hash")
		}
	})

	t.Run("Missing email", func(t *testing.T) {
		e := newEnv(t)
		rr := e.do(t, "POST", "/register", "", map[string]string{"password": "password123"})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
		}
	})

	t.Run("Missing password", func(t *testing.T) {
		e := newEnv(t)
		rr := e.do(t, "POST", "/register", "", map[string]string{"email": "a@example.com"})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
		}
		if _, err := e.users.FindByEmail(context.Background(), "a@example.com"); err == nil {
			t.Error("user created despite missing password")
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("Successful login", func(t *testing.T) {
		e := newEnv(t)
		u := e.seedUser(t, "login@example.com", "secretpass")

		rr := e.do(t, "POST", "/login", "", map[string]string{
			"email":    "login@example.com",
			"password": "secretpass",
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
		}

		body := decodeBody(t, rr)
		token, _ := body["token"].(string)
		if token == "" {
			t.Fatal("response missing token")
		}
		userData, _ := body["userData"].(map[string]any)
		if userData["email"] != "login@example.com" || userData["id"] != u.ID.Hex() {
			t.Errorf("unexpected userData: %v", userData)
		}

		// The gate must accept the issued token.
		listRR := e.do(t, "GET", "/notes", token, nil)
		if listRR.Code != http.StatusOK {
			t.Errorf("gate rejected a freshly issued token: status = %d", listRR.Code)
		}
	})

	t.Run("Wrong password", func(t *testing.T) {
		e := newEnv(t)
		e.seedUser(t, "login@example.com", "secretpass")

		rr := e.do(t, "POST", "/login", "", map[string]string{
			"email":    "login@example.com",
			"password": "wrongpass",
		})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
		}
		if _, ok := decodeBody(t, rr)["token"]; ok {
			t.Error("token issued for a wrong password")
		}
	})

	t.Run("Unknown email", func(t *testing.T) {
		e := newEnv(t)
		rr := e.do(t, "POST", "/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "whatever",
		})
		if rr.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
		}
	})

	t.Run("Missing fields", func(t *testing.T) {
		e := newEnv(t)
		rr := e.do(t, "POST", "/login", "", map[string]string{"email": "login@example.com"})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
		}
	})
}
