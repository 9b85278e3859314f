package http

import (
	"io"
	"path"
	"strings"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/exambank/examgen/internal/storage"
)

const maxImageUpload = 10 << 20

// UploadImageHandler stores a problem or choice image and returns its key.
func UploadImageHandler(store storage.BlobStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if err := r.ParseMultipartForm(maxImageUpload); err != nil {
			writeError(w, nethttp.StatusBadRequest, "bad multipart form")
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, "image field is required")
			return
		}
		defer file.Close()

		ext := strings.ToLower(path.Ext(header.Filename))
		switch ext {
		case ".png", ".jpg", ".jpeg":
		default:
			writeError(w, nethttp.StatusBadRequest, "only png and jpeg images are accepted")
			return
		}
		key, err := store.Put("img/"+uuid.NewString()+ext, file)
		if err != nil {
			writeError(w, nethttp.StatusInternalServerError, "store error")
			return
		}
		writeJSON(w, nethttp.StatusCreated, map[string]string{"image_path": key})
	}
}

// GetImageHandler serves a stored image by its key.
func GetImageHandler(store storage.BlobStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		key := chi.URLParam(r, "*")
		if key == "" {
			writeError(w, nethttp.StatusBadRequest, "missing image key")
			return
		}
		rc, err := store.Get(key)
		if err != nil {
			writeError(w, nethttp.StatusNotFound, "image not found")
			return
		}
		defer rc.Close()

		switch strings.ToLower(path.Ext(key)) {
		case ".jpg", ".jpeg":
			w.Header().Set("Content-Type", "image/jpeg")
		default:
			w.Header().Set("Content-Type", "image/png")
		}
		_, _ = io.Copy(w, rc)
	}
}
