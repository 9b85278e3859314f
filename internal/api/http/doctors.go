package http

import (
	"errors"
	"strings"

	nethttp "net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/exambank/examgen/internal/auth/middleware"
	"github.com/exambank/examgen/internal/exam"
)

const bcryptCost = 12

func RegisterHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &req); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			writeError(w, nethttp.StatusBadRequest, "valid email is required")
			return
		}
		if len(req.Password) < 8 {
			writeError(w, nethttp.StatusBadRequest, "password must be at least 8 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			writeError(w, nethttp.StatusInternalServerError, "hash error")
			return
		}
		d := exam.Doctor{Name: req.Name, Email: req.Email, PasswordHash: string(hash)}
		id, err := store.CreateDoctor(r.Context(), d)
		if err != nil {
			writeFailure(w, err)
			return
		}
		d.ID = id
		writeJSON(w, nethttp.StatusCreated, d)
	}
}

func LoginHandler(store *exam.SQLStore, authSvc *auth.AuthService) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &req); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		d, err := store.GetDoctorByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			if errors.Is(err, exam.ErrNotFound) {
				writeError(w, nethttp.StatusUnauthorized, "invalid credentials")
				return
			}
			writeFailure(w, err)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(req.Password)) != nil {
			writeError(w, nethttp.StatusUnauthorized, "invalid credentials")
			return
		}
		token, err := authSvc.IssueJWT(d.ID, d.Name, d.Email)
		if err != nil {
			writeError(w, nethttp.StatusInternalServerError, "token error")
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"token": token, "doctor": d})
	}
}

func ProfileHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		sub := auth.SubjectFromContext(r.Context())
		if sub <= 0 {
			writeError(w, nethttp.StatusUnauthorized, "unauthorized")
			return
		}
		d, err := store.GetDoctor(r.Context(), sub)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, d)
	}
}

// UpdateProfileHandler updates the authenticated doctor's name, email, and
// optionally the password.
func UpdateProfileHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		sub := auth.SubjectFromContext(r.Context())
		if sub <= 0 {
			writeError(w, nethttp.StatusUnauthorized, "unauthorized")
			return
		}
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &req); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		d, err := store.GetDoctor(r.Context(), sub)
		if err != nil {
			writeFailure(w, err)
			return
		}
		if req.Name != "" {
			d.Name = req.Name
		}
		if req.Email != "" {
			d.Email = strings.ToLower(strings.TrimSpace(req.Email))
		}
		if req.Password != "" {
			if len(req.Password) < 8 {
				writeError(w, nethttp.StatusBadRequest, "password must be at least 8 characters")
				return
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
			if err != nil {
				writeError(w, nethttp.StatusInternalServerError, "hash error")
				return
			}
			d.PasswordHash = string(hash)
		}
		if err := store.UpdateDoctor(r.Context(), d); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, d)
	}
}
