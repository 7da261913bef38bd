package http_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/denguescope/frontend"
	controller "github.com/secmon-lab/denguescope/pkg/controller/http"
	"github.com/secmon-lab/denguescope/pkg/repository"
	"github.com/secmon-lab/denguescope/pkg/service/chart"
	"github.com/secmon-lab/denguescope/pkg/service/page"
	"github.com/secmon-lab/denguescope/pkg/usecase"
)

const basePath = "/dengue-ml-forecasting/dengue-dashboard/"

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"documentations/SVIT.pdf":         {Data: []byte("%PDF-1.4 test")},
		"images/1734620858627.jpg":        {Data: []byte("jpeg")},
		"images/nested/1734606122326.jpg": {Data: []byte("nested")},
		"secret.txt":                      {Data: []byte("not served")},

		"documentations/ส่งแข่ง-1.pdf": {Data: []byte("%PDF-1.4 thai")},
	}
}

func newServer(t *testing.T, base string, opts ...controller.Option) *controller.Server {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx = ctxlog.With(ctx, logger)

	dataset, err := repository.NewEmbedded().Load(ctx)
	gt.NoError(t, err).Required()

	dashboard := usecase.NewDashboard(dataset, usecase.WithRandomSource(usecase.NewSeededSource(3)))
	renderer, err := page.New(base, chart.New())
	gt.NoError(t, err).Required()

	opts = append([]controller.Option{
		controller.WithBasePath(page.NormalizeBasePath(base)),
		controller.WithStatic(frontend.Static()),
	}, opts...)

	server, err := controller.NewServer(ctx, ":0", dashboard, renderer, opts...)
	gt.NoError(t, err).Required()
	return server
}

func get(server *controller.Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	server.Server.Handler.ServeHTTP(w, req)
	return w
}

func TestServerHealthCheck(t *testing.T) {
	server := newServer(t, basePath)

	w := get(server, "/health")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.True(t, strings.Contains(w.Body.String(), "healthy"))
	gt.True(t, strings.Contains(w.Body.String(), "denguescope"))
}

func TestServerOverview(t *testing.T) {
	server := newServer(t, basePath)

	for _, target := range []string{
		basePath,
		strings.TrimSuffix(basePath, "/"),
		basePath + "overview",
		basePath + "overview/",
	} {
		t.Run(target, func(t *testing.T) {
			w := get(server, target)
			gt.Equal(t, w.Code, http.StatusOK)
			gt.Equal(t, w.Header().Get("Content-Type"), "text/html; charset=utf-8")

			body := w.Body.String()
			gt.S(t, body).Contains(`<div class="value tone-success">-19.9%</div>`)
			gt.S(t, body).Contains("1436")
			gt.S(t, body).Contains("Disease Pattern Analysis")
		})
	}
}

func TestServerTabs(t *testing.T) {
	server := newServer(t, basePath)

	testCases := []struct {
		name     string
		target   string
		contains string
	}{
		{"prediction", "prediction/", "Model Predictions Comparison"},
		{"modeling defaults to comparison", "modeling/", "<td>Scalability</td>"},
		{"comparison", "modeling/comparison/", "<td>Scalability</td>"},
		{"architecture", "modeling/architecture/", "Neural Network Configuration"},
		{"research", "about/research/", "Research Highlights"},
		{"about defaults to research", "about", "Research Highlights"},
		{"technical", "about/technical/", "Technical Skills"},
		{"impact", "about/impact/", "Project Impact"},
		{"awards", "about/awards/", "IDS Science Project SYMPOSIUM 2024"},
		{"gallery", "about/gallery/", "1734606122326.jpg"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(server, basePath+tc.target)
			gt.Equal(t, w.Code, http.StatusOK)
			gt.S(t, w.Body.String()).Contains(tc.contains)
		})
	}
}

func TestServerRendersOnlySelectedSection(t *testing.T) {
	server := newServer(t, basePath)

	markers := map[string]string{
		"":                       "Current Risk Level",
		"prediction/":            "Model Predictions Comparison",
		"modeling/comparison/":   "<td>Scalability</td>",
		"modeling/architecture/": "Neural Network Configuration",
		"about/research/":        "Research Highlights",
	}

	for target := range markers {
		t.Run("page "+target, func(t *testing.T) {
			w := get(server, basePath+target)
			gt.Equal(t, w.Code, http.StatusOK)

			body := w.Body.String()
			for other, marker := range markers {
				if other == target {
					gt.S(t, body).Contains(marker)
				} else {
					gt.False(t, strings.Contains(body, marker))
				}
			}
		})
	}
}

func TestServerUnknownTab(t *testing.T) {
	server := newServer(t, basePath)

	for _, target := range []string{
		basePath + "settings/",
		basePath + "about/contact/",
		basePath + "prediction/extra/",
		basePath + "a/b/c",
		"/elsewhere",
	} {
		t.Run(target, func(t *testing.T) {
			w := get(server, target)
			gt.Equal(t, w.Code, http.StatusNotFound)
			gt.S(t, w.Body.String()).Contains("Page not found")
		})
	}
}

func TestServerRootRedirect(t *testing.T) {
	server := newServer(t, basePath)

	w := get(server, "/")
	gt.Equal(t, w.Code, http.StatusFound)
	gt.Equal(t, w.Header().Get("Location"), basePath)
}

func TestServerRootBasePath(t *testing.T) {
	server := newServer(t, "/")

	w := get(server, "/")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains(`href="/static/dashboard.css"`)

	w = get(server, "/prediction/")
	gt.Equal(t, w.Code, http.StatusOK)

	w = get(server, "/health")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains("healthy")
}

func TestServerStatic(t *testing.T) {
	server := newServer(t, basePath)

	w := get(server, basePath+"static/dashboard.css")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, w.Header().Get("Content-Type"), "text/css; charset=utf-8")
	gt.S(t, w.Body.String()).Contains(".tone-success")

	w = get(server, basePath+"static/missing.css")
	gt.Equal(t, w.Code, http.StatusNotFound)
}

func TestServerAssets(t *testing.T) {
	t.Run("without assets", func(t *testing.T) {
		server := newServer(t, basePath)
		w := get(server, basePath+"documentations/SVIT.pdf")
		gt.Equal(t, w.Code, http.StatusNotFound)
	})

	server := newServer(t, basePath, controller.WithAssets(testAssets()))

	testCases := []struct {
		name        string
		target      string
		status      int
		contentType string
	}{
		{"pdf", "documentations/SVIT.pdf", http.StatusOK, "application/pdf"},
		{"escaped thai name", "documentations/%E0%B8%AA%E0%B9%88%E0%B8%87%E0%B9%81%E0%B8%82%E0%B9%88%E0%B8%87-1.pdf", http.StatusOK, "application/pdf"},
		{"image", "images/1734620858627.jpg", http.StatusOK, "image/jpeg"},
		{"nested image", "images/nested/1734606122326.jpg", http.StatusOK, "image/jpeg"},
		{"missing", "images/none.jpg", http.StatusNotFound, ""},
		{"directory", "images/nested/", http.StatusNotFound, ""},
		{"outside asset dirs", "images/../secret.txt", http.StatusNotFound, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(server, basePath+tc.target)
			gt.Equal(t, w.Code, tc.status)
			if tc.contentType != "" {
				gt.Equal(t, w.Header().Get("Content-Type"), tc.contentType)
			}
		})
	}
}

func TestNewServerValidation(t *testing.T) {
	ctx := context.Background()
	dataset, err := repository.NewEmbedded().Load(ctx)
	gt.NoError(t, err).Required()
	dashboard := usecase.NewDashboard(dataset)
	renderer, err := page.New("/", nil)
	gt.NoError(t, err).Required()

	_, err = controller.NewServer(ctx, ":0", nil, renderer)
	gt.Error(t, err)

	_, err = controller.NewServer(ctx, ":0", dashboard, renderer, controller.WithBasePath("no-slash"))
	gt.Error(t, err)
}
