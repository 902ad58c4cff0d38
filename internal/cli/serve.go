package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cpwdesign/pkg/design"
	cpwerrors "github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/render/sink"
)

// serveCommand starts an HTTP server that re-reads the design file on every
// request, so edits show up on reload.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <design.toml>",
		Short: "Serve live SVG previews of a design file",
		Long: `Serve live previews of a design file over HTTP.

Routes:
  GET /components          component summary (JSON)
  GET /components/{name}.svg  one component
  GET /design.svg          the whole design
  GET /design.json         primitives and section chains`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, args[0])
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, path string) error {
	logger := loggerFromContext(ctx)
	if _, _, err := c.loadDesign(path); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newPreviewServer(c, path, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("preview server listening", "url", "http://"+addr+"/design.svg")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type previewServer struct {
	cli    *CLI
	path   string
	logger *log.Logger
}

func newPreviewServer(c *CLI, path string, logger *log.Logger) *previewServer {
	return &previewServer{cli: c, path: path, logger: logger}
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/components", s.handleComponents)
	r.Get("/components/{name}.svg", s.handleComponentSVG)
	r.Get("/design.svg", s.handleDesignSVG)
	r.Get("/design.json", s.handleDesignJSON)
	return r
}

func (s *previewServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Millisecond),
			"id", middleware.GetReqID(r.Context()))
	})
}

// build loads and generates a fresh design for one request.
func (s *previewServer) build(ctx context.Context) (*design.Design, error) {
	_, d, err := s.cli.loadDesign(s.path)
	if err != nil {
		return nil, err
	}
	if err := d.Generate(ctx); err != nil {
		s.logger.Warn("some components failed", "err", err)
	}
	return d, nil
}

type componentSummary struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Layer     string  `json:"layer"`
	Generated bool    `json:"generated"`
	Sections  int     `json:"sections"`
	Length    float64 `json:"length"`
}

func (s *previewServer) handleComponents(w http.ResponseWriter, r *http.Request) {
	d, err := s.build(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	out := []componentSummary{}
	for _, c := range d.Components() {
		out = append(out, componentSummary{
			Name:      c.Name(),
			Kind:      c.Kind(),
			Layer:     c.Layer(),
			Generated: c.Generated(),
			Sections:  len(c.Sections()),
			Length:    c.ActualLength(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (s *previewServer) handleComponentSVG(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	d, err := s.build(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	c, ok := d.Component(name)
	if !ok {
		http.Error(w, "unknown component "+name, http.StatusNotFound)
		return
	}
	canvas := sink.NewCanvas()
	if err := c.Draw(r.Context(), canvas); err != nil {
		s.fail(w, err)
		return
	}
	writeSVG(w, sink.RenderSVG(canvas))
}

func (s *previewServer) handleDesignSVG(w http.ResponseWriter, r *http.Request) {
	d, err := s.build(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	canvas, err := drawCanvas(r.Context(), d)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeSVG(w, sink.RenderSVG(canvas))
}

func (s *previewServer) handleDesignJSON(w http.ResponseWriter, r *http.Request) {
	d, err := s.build(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	canvas, err := drawCanvas(r.Context(), d)
	if err != nil {
		s.fail(w, err)
		return
	}
	data, err := sink.RenderJSON(canvas, sink.WithJSONDesign(d))
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func writeSVG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

// fail maps coded errors to HTTP statuses.
func (s *previewServer) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch cpwerrors.GetCode(err) {
	case cpwerrors.ErrCodeNotGenerated:
		status = http.StatusConflict
	case cpwerrors.ErrCodeInvalidConfig, cpwerrors.ErrCodeFileNotFound:
		status = http.StatusUnprocessableEntity
	}
	s.logger.Error("request failed", "err", err)
	http.Error(w, cpwerrors.UserMessage(err), status)
}
