// Package server is the HTTP front-end: it renders image assets into pages,
// serves per-mount markup and receives load error reports from browsers.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"docc_render/asset_app"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const maxImportBodyBytes = 4 << 20
const maxAssetBodyBytes = 256 << 10

// LoadErrorPath is the endpoint a mount's image reports load errors to.
func LoadErrorPath(mountID string) string {
	return "/mounts/" + mountID + "/error"
}

type Server struct {
	app    *asset_app.AssetApp
	server *http.Server
	router chi.Router
}

func New(app *asset_app.AssetApp, addr string) *Server {
	s := &Server{app: app}
	s.router = s.routes()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(instrumentRequests)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/import", s.handleImport)

	r.Route("/assets/{assetID}", func(r chi.Router) {
		r.Get("/", s.handleShow)
		r.Get("/fragment", s.handleFragment)
	})
	r.Route("/mounts/{mountID}", func(r chi.Router) {
		r.Get("/", s.handleMount)
		r.Post("/error", s.handleLoadError)
	})
	r.Route("/api/assets", func(r chi.Router) {
		r.Get("/", s.handleListAssets)
		r.Post("/", s.handleCreateAsset)
		r.Get("/{assetID}", s.handleGetAsset)
		r.Delete("/{assetID}", s.handleDeleteAsset)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errChan := make(chan error, 1)
	go func() {
		log.Printf("level=info event=startup addr=%s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to start service on %s: %w", s.server.Addr, err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		log.Printf("level=info event=shutdown addr=%s", s.server.Addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

func instrumentRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		observer := &statusObserver{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(observer, r)
		log.Printf(
			"level=info event=http_request request_id=%s method=%s path=%q status=%d duration_ms=%d remote=%q",
			chimw.GetReqID(r.Context()),
			r.Method,
			r.URL.Path,
			observer.status,
			time.Since(started).Milliseconds(),
			r.RemoteAddr,
		)
	})
}

type statusObserver struct {
	http.ResponseWriter
	status int
}

func (o *statusObserver) WriteHeader(status int) {
	o.status = status
	o.ResponseWriter.WriteHeader(status)
}
