package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/interfaces"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
)

// Asset directories served from the assets tree
var assetDirs = []string{"documentations", "images"}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router    chi.Router
	dashboard interfaces.Dashboard
	pages     interfaces.PageRenderer
	basePath  string
	static    fs.FS
	assets    fs.FS
}

// Option configures the server
type Option func(*Server)

// WithBasePath mounts the dashboard below a path prefix. The default is "/".
func WithBasePath(basePath string) Option {
	return func(s *Server) {
		s.basePath = basePath
	}
}

// WithStatic serves the stylesheet tree under static/
func WithStatic(fsys fs.FS) Option {
	return func(s *Server) {
		s.static = fsys
	}
}

// WithAssets serves documents and gallery images
func WithAssets(fsys fs.FS) Option {
	return func(s *Server) {
		s.assets = fsys
	}
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	dashboard interfaces.Dashboard,
	pages interfaces.PageRenderer,
	opts ...Option,
) (*Server, error) {
	if dashboard == nil || pages == nil {
		return nil, goerr.New("dashboard and page renderer are required")
	}

	s := &Server{
		dashboard: dashboard,
		pages:     pages,
		basePath:  "/",
	}
	for _, opt := range opts {
		opt(s)
	}
	if !strings.HasPrefix(s.basePath, "/") || !strings.HasSuffix(s.basePath, "/") {
		return nil, goerr.New("base path must start and end with a slash", goerr.V("base_path", s.basePath))
	}

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	if s.basePath == "/" {
		router.Mount("/", s.dashboardRouter(ctx))
	} else {
		router.Mount(strings.TrimSuffix(s.basePath, "/"), s.dashboardRouter(ctx))
		router.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, s.basePath, http.StatusFound)
		})
		router.NotFound(s.handleNotFound)
	}

	s.router = router
	s.Server = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	return s, nil
}

func (s *Server) dashboardRouter(ctx context.Context) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)

	if s.static != nil {
		r.Handle("/static/*", NewFileHandler(s.static, ""))
	}

	if s.assets != nil {
		for _, dir := range assetDirs {
			r.Handle("/"+dir+"/*", NewFileHandler(s.assets, dir))
		}
		ctxlog.From(ctx).Info("Serving dashboard assets", "dirs", assetDirs)
	}

	r.Get("/", s.handlePage)
	r.Get("/{tab}", s.handlePage)
	r.Get("/{tab}/{sub}", s.handlePage)
	r.NotFound(s.handleNotFound)

	return r
}

// handlePage renders the page of the selected tab
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel, err := s.dashboard.Resolve(chi.URLParam(r, "tab"), chi.URLParam(r, "sub"))
	if err != nil {
		if errors.Is(err, model.ErrUnknownTab) {
			s.handleNotFound(w, r)
			return
		}
		writeError(w, err, http.StatusBadRequest)
		return
	}

	page, err := s.dashboard.Render(ctx, sel)
	if err != nil {
		ctxlog.From(ctx).Error("Failed to build page", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.pages.RenderPage(ctx, &buf, page); err != nil {
		ctxlog.From(ctx).Error("Failed to render page", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeHTML(ctx, w, http.StatusOK, buf.Bytes())
}

// handleNotFound renders the not found page with the dashboard navigation
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dataset := s.dashboard.Dataset()
	tabs, _ := s.dashboard.Tabs().Navigation(model.Selection{})

	page := &model.Page{
		Title:    dataset.Title,
		Subtitle: dataset.Subtitle,
		Tabs:     tabs,
	}

	var buf bytes.Buffer
	if err := s.pages.RenderNotFound(ctx, &buf, page, r.URL.Path); err != nil {
		ctxlog.From(ctx).Error("Failed to render not found page", "error", err)
		http.NotFound(w, r)
		return
	}

	writeHTML(ctx, w, http.StatusNotFound, buf.Bytes())
}

func writeHTML(ctx context.Context, w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		ctxlog.From(ctx).Error("Failed to write page", "error", err)
	}
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "denguescope",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		// Can't get context here, so use background context
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}
