package api

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
)

const assetsDir = "assets"

// AssetHandler serves cover images and other static files from the
// assets directory of the content source.
type AssetHandler struct {
	fsys fs.FS
}

// NewAssetHandler creates a handler over the content source fsys.
func NewAssetHandler(fsys fs.FS) *AssetHandler {
	return &AssetHandler{fsys: fsys}
}

// safeName validates that the filename is a plain name (no path separators,
// no traversal) and returns its path inside fsys.
func safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	p := path.Join(assetsDir, name)
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	return p, nil
}

// ServeFile handles GET /assets/{filename}.
func (h *AssetHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	name, err := safeName(chi.URLParam(r, "filename"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	info, err := fs.Stat(h.fsys, name)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFileFS(w, r, h.fsys, name)
}
