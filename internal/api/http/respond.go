// Package http holds the HTTP handlers. Handlers only; routes remain in
// main.go.
package http

import (
	"encoding/json"
	"errors"
	"strconv"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/exambank/examgen/internal/exam"
	"github.com/exambank/examgen/internal/examgen"
)

func writeJSON(w nethttp.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeError(w nethttp.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}

// writeFailure maps store and generation sentinels onto HTTP statuses.
func writeFailure(w nethttp.ResponseWriter, err error) {
	writeError(w, errStatus(err), err.Error())
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, exam.ErrInvalid):
		return nethttp.StatusBadRequest
	case errors.Is(err, exam.ErrNotFound):
		return nethttp.StatusNotFound
	case errors.Is(err, exam.ErrConflict):
		return nethttp.StatusConflict
	case errors.Is(err, examgen.ErrTooLarge):
		return nethttp.StatusRequestEntityTooLarge
	default:
		return nethttp.StatusInternalServerError
	}
}

func pathID(r *nethttp.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func decodeBody(r *nethttp.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("bad json")
	}
	return nil
}
