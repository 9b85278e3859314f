package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	nethttp "net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	authmw "github.com/exambank/examgen/internal/auth/middleware"
	"github.com/exambank/examgen/internal/db"
	"github.com/exambank/examgen/internal/exam"
)

func newTestRouter(t *testing.T) (*chi.Mux, *exam.SQLStore) {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { dbh.Close() })
	store := exam.NewSQLStore(dbh, "sqlite")
	authSvc := authmw.NewAuthService("test-secret")

	r := chi.NewRouter()
	r.Post("/auth/register", RegisterHandler(store))
	r.Post("/auth/login", LoginHandler(store, authSvc))
	r.Post("/materials", CreateMaterialHandler(store))
	r.Get("/materials/{materialID}", GetMaterialHandler(store))
	r.Delete("/materials/{materialID}", DeleteMaterialHandler(store))
	return r, store
}

func doJSON(t *testing.T, r *chi.Mux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, nethttp.MethodPost, "/auth/register", map[string]string{
		"name": "Dr. Ahmed", "email": "Ahmed@Example.edu", "password": "s3cret-pass",
	})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("register: status = %d (%s)", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("register failed: %s", env.Message)
	}
	var d exam.Doctor
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatal(err)
	}
	if d.Email != "ahmed@example.edu" {
		t.Errorf("email not normalized: %q", d.Email)
	}

	rec = doJSON(t, r, nethttp.MethodPost, "/auth/register", map[string]string{
		"name": "Dup", "email": "ahmed@example.edu", "password": "another-pass",
	})
	if rec.Code != nethttp.StatusConflict {
		t.Errorf("duplicate register: status = %d", rec.Code)
	}

	rec = doJSON(t, r, nethttp.MethodPost, "/auth/register", map[string]string{
		"name": "Weak", "email": "weak@example.edu", "password": "short",
	})
	if rec.Code != nethttp.StatusBadRequest {
		t.Errorf("short password: status = %d", rec.Code)
	}

	rec = doJSON(t, r, nethttp.MethodPost, "/auth/login", map[string]string{
		"email": "ahmed@example.edu", "password": "s3cret-pass",
	})
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("login: status = %d (%s)", rec.Code, rec.Body.String())
	}
	env = decodeEnvelope(t, rec)
	var login struct {
		Token  string      `json:"token"`
		Doctor exam.Doctor `json:"doctor"`
	}
	if err := json.Unmarshal(env.Data, &login); err != nil {
		t.Fatal(err)
	}
	if login.Token == "" || login.Doctor.ID != d.ID {
		t.Errorf("login payload = %+v", login)
	}

	rec = doJSON(t, r, nethttp.MethodPost, "/auth/login", map[string]string{
		"email": "ahmed@example.edu", "password": "wrong",
	})
	if rec.Code != nethttp.StatusUnauthorized {
		t.Errorf("bad password: status = %d", rec.Code)
	}
	rec = doJSON(t, r, nethttp.MethodPost, "/auth/login", map[string]string{
		"email": "nobody@example.edu", "password": "whatever",
	})
	if rec.Code != nethttp.StatusUnauthorized {
		t.Errorf("unknown email: status = %d", rec.Code)
	}
}

func TestMaterialHandlers(t *testing.T) {
	r, store := newTestRouter(t)
	doctorID, err := store.CreateDoctor(context.Background(), exam.Doctor{
		Name: "Dr. Mona", Email: "mona@example.edu", PasswordHash: "x",
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, r, nethttp.MethodPost, "/materials", exam.Material{
		Name: "Operating Systems", Code: "CS301", Level: "Third",
		Department: "CS", Term: 1, DoctorID: doctorID,
	})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("create: status = %d (%s)", rec.Code, rec.Body.String())
	}
	var m exam.Material
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &m); err != nil {
		t.Fatal(err)
	}

	rec = doJSON(t, r, nethttp.MethodPost, "/materials", exam.Material{Name: "", DoctorID: doctorID})
	if rec.Code != nethttp.StatusBadRequest {
		t.Errorf("empty name: status = %d", rec.Code)
	}

	rec = doJSON(t, r, nethttp.MethodGet, fmt.Sprintf("/materials/%d", m.ID), nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}

	rec = doJSON(t, r, nethttp.MethodGet, "/materials/999", nil)
	if rec.Code != nethttp.StatusNotFound {
		t.Errorf("missing material: status = %d", rec.Code)
	}
	rec = doJSON(t, r, nethttp.MethodGet, "/materials/abc", nil)
	if rec.Code != nethttp.StatusBadRequest {
		t.Errorf("bad id: status = %d", rec.Code)
	}

	rec = doJSON(t, r, nethttp.MethodDelete, fmt.Sprintf("/materials/%d", m.ID), nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	rec = doJSON(t, r, nethttp.MethodDelete, fmt.Sprintf("/materials/%d", m.ID), nil)
	if rec.Code != nethttp.StatusNotFound {
		t.Errorf("double delete: status = %d", rec.Code)
	}
}
