package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhub/pawhub/internal/auth"
	"github.com/pawhub/pawhub/internal/domain"
	"github.com/pawhub/pawhub/internal/service"
	"github.com/pawhub/pawhub/internal/transport/http/middleware"
)

type memUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func (f *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func newAuthTestServer(t *testing.T) http.Handler {
	t.Helper()
	repo := &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
	issuer := auth.NewIssuer("test-secret", time.Hour)
	svc := service.NewAuthService(repo, issuer, nil, nil, time.Second)
	h := NewAuthHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", h.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	return middleware.JSONMuxErrors(mux)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), "every response must be a JSON envelope, got: %s", rec.Body.String())
	return rec, envelope
}

func registerBody() map[string]any {
	return map[string]any{
		"fullName":  "Jo Lee",
		"gender":    "Female",
		"birthdate": "1990-01-01",
		"email":     "JO@Example.com",
		"password":  "secret1",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	srv := newAuthTestServer(t)

	rec, envelope := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", registerBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]any)
	assert.NotEmpty(t, data["userId"])

	// Login with the already-lower-cased form of the same email.
	rec, envelope = doJSON(t, srv, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "jo@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["success"])

	data = envelope["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, false, data["isAdmin"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "jo@example.com", user["email"])
}

func TestRegister_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m map[string]any)
		message string
	}{
		{"missing gender", func(m map[string]any) { m["gender"] = "" }, "gender is required"},
		{"missing email", func(m map[string]any) { delete(m, "email") }, "email is required"},
		{"bad email", func(m map[string]any) { m["email"] = "a@b" }, "invalid email address"},
		{"short password", func(m map[string]any) { m["password"] = "12345" }, "password must be at least 6 characters"},
		{"future birthdate", func(m map[string]any) {
			m["birthdate"] = time.Now().AddDate(0, 0, 1).Format("2006-01-02")
		}, "birthdate cannot be in the future"},
		{"bad birthdate", func(m map[string]any) { m["birthdate"] = "not-a-date" }, "birthdate must be a valid YYYY-MM-DD date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newAuthTestServer(t)
			body := registerBody()
			tt.mutate(body)

			rec, envelope := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, envelope["success"])
			assert.Equal(t, tt.message, envelope["message"])
		})
	}
}

func TestRegister_DuplicateEmailIs400(t *testing.T) {
	srv := newAuthTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", registerBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same address, different casing: still a duplicate, and by
	// contract a 400, never a 201 or 409.
	body := registerBody()
	body["email"] = "jo@EXAMPLE.com"
	rec, envelope := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "email_taken", envelope["error"])
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := newAuthTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", registerBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	// Wrong password and unknown account produce identical envelopes.
	rec1, env1 := doJSON(t, srv, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": "jo@example.com", "password": "wrong-password",
	})
	rec2, env2 := doJSON(t, srv, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": "nobody@example.com", "password": "secret1",
	})

	assert.Equal(t, http.StatusUnauthorized, rec1.Code)
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
	assert.Equal(t, env1, env2)
}

func TestRegister_WrongVerbGetsJSON405(t *testing.T) {
	srv := newAuthTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/register", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "method_not_allowed", envelope["error"])
}

func TestRegister_Multipart(t *testing.T) {
	srv := newAuthTestServer(t)

	var buf bytes.Buffer
	mw := newMultipartBody(t, &buf, map[string]string{
		"fullName":  "Jo Lee",
		"gender":    "Female",
		"birthdate": "1990-01-01",
		"email":     "jo@example.com",
		"password":  "secret1",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", &buf)
	req.Header.Set("Content-Type", mw)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
