// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /v1/render   render a diagram document
//	GET  /healthz     liveness check
//	GET  /metrics     Prometheus metrics
//
// The render body is a TOML, YAML or JSON document. Its format comes from the
// doc query parameter, falling back to the Content-Type header and then to
// TOML. A single requested output format is answered with the raw artifact;
// several formats are answered with a JSON object of base64 artifacts.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/nnetplot/pkg/buildinfo"
	"github.com/matzehuels/nnetplot/pkg/diagram"
	"github.com/matzehuels/nnetplot/pkg/errors"
	"github.com/matzehuels/nnetplot/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes caps the size of a render request body.
	DefaultMaxBodyBytes = 1 << 20

	shutdownTimeout = 10 * time.Second
)

// ContentTypes maps output formats to the media type they are served as.
var ContentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// Server serves render requests through a shared pipeline runner.
type Server struct {
	runner       *pipeline.Runner
	logger       *log.Logger
	metrics      *Metrics
	maxBodyBytes int64
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics exposes m on /metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithMaxBodyBytes overrides [DefaultMaxBodyBytes].
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		runner:       runner,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
	})
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

type renderResponse struct {
	Title     string            `json:"title,omitempty"`
	DocHash   string            `json:"doc_hash"`
	Cached    bool              `json:"cached"`
	Stats     diagram.DrawStats `json:"stats"`
	Artifacts map[string][]byte `json:"artifacts"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("X-Doc-Hash", result.DocHash)
	w.Header().Set("X-Cache", cacheHeader(result.CacheInfo.RenderHit))

	if len(opts.Formats) == 1 {
		f := opts.Formats[0]
		w.Header().Set("Content-Type", ContentTypes[f])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[f])
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		Title:     result.Diagram.Title,
		DocHash:   result.DocHash,
		Cached:    result.CacheInfo.RenderHit,
		Stats:     result.Stats.DrawStats,
		Artifacts: result.Artifacts,
	})
}

func (s *Server) renderOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()

	docFormat, err := requestDocFormat(r)
	if err != nil {
		return pipeline.Options{}, err
	}

	body, err := readBody(w, r, s.maxBodyBytes)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Document:   body,
		DocFormat:  docFormat,
		Source:     RequestIDFromContext(r.Context()),
		VizType:    q.Get("type"),
		Formats:    pipeline.ParseFormats(q.Get("format")),
		Background: q.Get("background"),
		Logger:     s.logger.With("request_id", RequestIDFromContext(r.Context())),
	}
	if opts.Scale, err = floatParam(q.Get("scale"), "scale"); err != nil {
		return opts, err
	}
	if opts.Margin, err = floatParam(q.Get("margin"), "margin"); err != nil {
		return opts, err
	}
	if opts.Detailed, err = boolParam(q.Get("detailed"), "detailed"); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh"), "refresh"); err != nil {
		return opts, err
	}
	opts.SetRenderDefaults()
	return opts, nil
}

func requestDocFormat(r *http.Request) (diagram.Format, error) {
	if v := r.URL.Query().Get("doc"); v != "" {
		return diagram.ParseFormat(v)
	}
	if f, ok := diagram.FormatFromContentType(r.Header.Get("Content-Type")); ok {
		return f, nil
	}
	return diagram.FormatTOML, nil
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, limit)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return data, nil
}

func floatParam(v, name string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", name, v)
	}
	return f, nil
}

func boolParam(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s: not a boolean: %q", name, v)
	}
	return b, nil
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}

	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", RequestIDFromContext(r.Context()), "error", err)
	}
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   msg,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
