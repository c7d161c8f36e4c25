package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/read-rally/readrally/internal/storage"
)

// MountAssets wires the book cover asset routes.
func MountAssets(r chi.Router, bs storage.BlobStore) {
	// POST /assets/covers/{bookID}
	r.Post("/covers/{bookID}", func(w http.ResponseWriter, r *http.Request) {
		bookID := chi.URLParam(r, "bookID")
		f, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file required")
			return
		}
		defer f.Close()

		key := "covers/" + bookID
		if _, err := bs.Put(key, f); err != nil {
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"key": key})
	})

	// GET /assets/*  -> returns the blob at whatever follows /assets/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, err := bs.Get(key)
		if err != nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	})
}
