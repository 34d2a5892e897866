package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/config"
	"github.com/Swaraj-Darekar0/mipoe-api/internal/services"
)

type noopMailer struct{}

func (n *noopMailer) Send(to string, subject string, body string) error { return nil }

func TestRegisterCreatorSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Email must be free in every role table.
	mock.ExpectQuery("SELECT EXISTS .+ FROM brands").WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT EXISTS .+ FROM creators").WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT EXISTS .+ FROM admins").WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO creators").WillReturnRows(
		sqlmock.NewRows([]string{"join_date", "created_at"}).AddRow(time.Now().UTC(), time.Now().UTC()),
	)

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"}, services.EmailSender(&noopMailer{}))

	payload := map[string]any{
		"username": "alice",
		"email":    "a@b.com",
		"password": "password123",
		"role":     "creator",
	}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRegisterDuplicateEmailAcrossRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Email already holds a brand account; creator registration must fail.
	mock.ExpectQuery("SELECT EXISTS .+ FROM brands").WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"}, services.EmailSender(&noopMailer{}))

	payload := map[string]any{
		"username": "alice",
		"email":    "a@b.com",
		"password": "password123",
		"role":     "creator",
	}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "email_taken" {
		t.Fatalf("expected email_taken, got %v", resp)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"}, services.EmailSender(&noopMailer{}))

	payload := map[string]any{
		"username": "alice",
		"email":    "a@b.com",
		"password": "password123",
		"role":     "superuser",
	}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestLoginCreatorSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword: %v", err)
	}

	mock.ExpectQuery("FROM creators").WithArgs("a@b.com").WillReturnRows(
		sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "profile_completed", "phone", "nickname", "bio", "join_date", "created_at"}).
			AddRow("u1", "alice", "a@b.com", string(hash), true, nil, nil, nil, time.Now().UTC(), time.Now().UTC()),
	)

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"}, services.EmailSender(&noopMailer{}))
	payload := map[string]any{"email": "a@b.com", "password": "password123", "role": "creator"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] == nil {
		t.Fatalf("expected access_token, got %v", resp)
	}
	if resp["profile_completed"] != true {
		t.Fatalf("expected profile_completed=true, got %v", resp)
	}
	if resp["role"] != "creator" {
		t.Fatalf("expected role creator, got %v", resp)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	mock.ExpectQuery("FROM brands").WithArgs("a@b.com").WillReturnRows(
		sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow("u1", "acme", "a@b.com", string(hash), time.Now().UTC()),
	)

	h := NewAuthHandler(db, &config.Config{JWTSecret: "dev"}, services.EmailSender(&noopMailer{}))
	payload := map[string]any{"email": "a@b.com", "password": "wrongpassword", "role": "brand"}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d (%s)", w.Code, w.Body.String())
	}
}
