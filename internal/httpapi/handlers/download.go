package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"lifedemo/internal/httpkit"
	"lifedemo/internal/pkg/errors"
)

// Download serves a rendered output by file name until the janitor removes it.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		httpkit.WriteError(w, r, h.log, 0, errors.NotFound("output", name))
		return
	}

	st, err := os.Stat(filepath.Join(h.outputsDir, name))
	if err != nil || !st.Mode().IsRegular() {
		httpkit.WriteError(w, r, h.log, 0, errors.NotFound("output", name))
		return
	}

	http.ServeFileFS(w, r, os.DirFS(h.outputsDir), name)
}
