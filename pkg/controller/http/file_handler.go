package http

import (
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
)

// FileHandler serves files of a tree below a route wildcard. Unlike a SPA handler
// there is no index fallback: a missing file is a 404.
type FileHandler struct {
	fileSystem http.FileSystem
	prefix     string
}

// NewFileHandler creates a file handler. prefix is prepended to the wildcard
// so that "/images/*" can serve "images/a.jpg" from the root of fsys.
func NewFileHandler(fsys fs.FS, prefix string) *FileHandler {
	return &FileHandler{
		fileSystem: http.FS(fsys),
		prefix:     strings.Trim(prefix, "/"),
	}
}

// ServeHTTP implements http.Handler
func (h *FileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	// Clean the path to prevent directory traversal
	cleanPath := path.Join("/", h.prefix, path.Clean("/"+name))

	file, err := h.fileSystem.Open(cleanPath)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			ctxlog.From(r.Context()).Warn("Failed to close file", "path", cleanPath, "error", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if stat.IsDir() {
		http.NotFound(w, r)
		return
	}

	if contentType := getContentType(cleanPath); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	http.ServeContent(w, r, stat.Name(), stat.ModTime(), file)
}

var mimeTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".json":  "application/json; charset=utf-8",
	".pdf":   "application/pdf",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
}

// getContentType returns the content type for common file extensions
func getContentType(filePath string) string {
	return mimeTypes[strings.ToLower(path.Ext(filePath))]
}
