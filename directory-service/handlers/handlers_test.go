package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"staffdir-backend/shared/clients"
	"staffdir-backend/shared/database/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubGeocoder returns fixed coordinates and counts lookups
type stubGeocoder struct {
	coords clients.Coordinates
	calls  int
}

func (s *stubGeocoder) Resolve(ctx context.Context, address string) clients.Coordinates {
	s.calls++
	return s.coords
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get database instance: %v", err)
	}
	// A single connection keeps every statement on the same in-memory DB
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.Company{}, &models.User{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

func newTestRouter(t *testing.T, geo clients.Geocoder) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	router := gin.New()
	RegisterRoutes(router, NewCompanyHandler(db, geo), NewUserHandler(db))

	return router, db
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

// errorEnvelope mirrors the error response body
type errorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Message string            `json:"message"`
		Details []json.RawMessage `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()

	var envelope errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal error envelope: %v (body=%s)", err, rec.Body.String())
	}
	if envelope.Success {
		t.Fatalf("expected success=false in error envelope, body=%s", rec.Body.String())
	}
	return envelope
}

func decodeConfirmation(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var message string
	if err := json.Unmarshal(rec.Body.Bytes(), &message); err != nil {
		t.Fatalf("unmarshal confirmation: %v (body=%s)", err, rec.Body.String())
	}
	return message
}

func createCompany(t *testing.T, router http.Handler, name, address string) models.Company {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/companies", map[string]string{
		"name":    name,
		"address": address,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create company: expected status %d, got %d body=%s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var company models.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &company); err != nil {
		t.Fatalf("unmarshal created company: %v", err)
	}
	return company
}

func createUser(t *testing.T, router http.Handler, email string, companyID *uint) models.User {
	t.Helper()

	payload := map[string]any{
		"first_name":  "Test",
		"last_name":   "User",
		"email":       email,
		"designation": "Engineer",
		"dob":         "1990-01-01",
	}
	if companyID != nil {
		payload["company_id"] = *companyID
	}

	rec := doJSON(t, router, http.MethodPost, "/users", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user: expected status %d, got %d body=%s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var user models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("unmarshal created user: %v", err)
	}
	return user
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestRouteNotFound(t *testing.T) {
	router, _ := newTestRouter(t, &stubGeocoder{})

	rec := doJSON(t, router, http.MethodGet, "/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}

	envelope := decodeError(t, rec)
	if envelope.Error.Message != "Route Not Found" {
		t.Fatalf("unexpected message: %q", envelope.Error.Message)
	}
}
