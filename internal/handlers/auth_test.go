package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"blogapi/internal/models"
	"blogapi/internal/service"
)

func TestRegisterHandler(t *testing.T) {
	auth := &mockAuth{signUpUser: &models.User{ID: 42, Email: "u@x.com", CreatedAt: "2026-08-30"}}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// success
	body := bytes.NewBufferString(`{"email":"u@x.com","password":"pw123456"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("register status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["id"].(float64)) != 42 {
		t.Fatalf("expected id=42, got %v", m["id"])
	}
	if m["email"] != "u@x.com" || m["created_at"] != "2026-08-30" {
		t.Fatalf("unexpected body: %v", m)
	}
	if _, ok := m["password_hash"]; ok {
		t.Fatalf("password hash leaked in response: %v", m)
	}
	if auth.lastSignUpEmail != "u@x.com" || auth.lastSignUpPassword != "pw123456" {
		t.Fatalf("service got %q/%q", auth.lastSignUpEmail, auth.lastSignUpPassword)
	}

	// duplicate email → 400
	auth.signUpErr = service.ErrDuplicateEmail
	auth.signUpUser = nil
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(`{"email":"u@x.com","password":"pw123456"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", w.Code)
	}

	// malformed body → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestLoginHandler(t *testing.T) {
	auth := &mockAuth{genTokenToken: "tok123"}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// success: OAuth2 password form
	form := url.Values{"username": {"u@x.com"}, "password": {"pw123456"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["access_token"] != "tok123" || m["token_type"] != "bearer" {
		t.Fatalf("unexpected token payload: %v", m)
	}
	if auth.lastGenEmail != "u@x.com" {
		t.Fatalf("expected username forwarded as email, got %q", auth.lastGenEmail)
	}

	// bad credentials → 401 with bearer challenge
	auth.genTokenErr = service.ErrInvalidCredentials
	auth.genTokenToken = ""
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", w.Code)
	}
	if w.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer, got %q", w.Header().Get("WWW-Authenticate"))
	}

	// missing form field → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/token", strings.NewReader("username=u%40x.com"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", w.Code)
	}
}

func TestMeHandler(t *testing.T) {
	auth := &mockAuth{resolveUser: &models.User{ID: 7, Email: "me@x.com", CreatedAt: "2026-01-01"}}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header = authHeader("good-token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("me status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["id"].(float64)) != 7 || m["email"] != "me@x.com" {
		t.Fatalf("unexpected body: %v", m)
	}
	if auth.lastResolveToken != "good-token" {
		t.Fatalf("ResolveUser got %q", auth.lastResolveToken)
	}

	// no token → 401
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestSystemHandlers(t *testing.T) {
	s := &service.Service{}
	r := newTestRouter(s)

	for _, path := range []string{"/", "/api/hello", "/health"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
	}
}
