// Package httpapi serves eligibility checks and recommendations over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/foerdercheck/internal/advisor"
	"github.com/vijay-prabhu/foerdercheck/internal/catalog"
	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
	"github.com/vijay-prabhu/foerdercheck/internal/logger"
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

const programsPrefix = "/v1/programs/"

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// EvaluateRequest is the body of POST /v1/evaluate
type EvaluateRequest struct {
	ProgramID string       `json:"program_id"`
	Profile   *profile.Raw `json:"profile"`
}

// EvaluateAllRequest is the body of POST /v1/evaluate-all
type EvaluateAllRequest struct {
	Profile *profile.Raw       `json:"profile"`
	Status  eligibility.Status `json:"status,omitempty"`
}

// EvaluateAllResponse is the result of POST /v1/evaluate-all
type EvaluateAllResponse struct {
	Results []eligibility.ProgramResult `json:"results"`
	Stats   eligibility.Stats           `json:"stats"`
}

// RecommendRequest is the body of POST /v1/recommend
type RecommendRequest struct {
	Profile    *profile.Raw `json:"profile"`
	MaxResults int          `json:"max_results,omitempty"`
}

// Server routes HTTP requests to an Advisor
type Server struct {
	advisor *advisor.Advisor
	logger  *zap.Logger
	metrics fasthttp.RequestHandler
	health  func(context.Context) error
	base    context.Context
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger.OrNop(l)
	}
}

// WithMetrics exposes the metrics of g on GET /metrics
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}
}

// WithHealthCheck makes GET /healthz report the result of check
func WithHealthCheck(check func(context.Context) error) Option {
	return func(s *Server) {
		s.health = check
	}
}

// New creates a Server
func New(a *advisor.Advisor, opts ...Option) *Server {
	s := &Server{
		advisor: a,
		logger:  zap.NewNop(),
		base:    context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.base = ctx
	srv := &fasthttp.Server{
		Handler:      s.Handler,
		Name:         "foerdercheck",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(addr)
	}()
	s.logger.Info("http server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// Handler is the fasthttp request handler
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	switch {
	case path == "/healthz":
		s.handleHealth(ctx)
	case path == "/metrics" && s.metrics != nil:
		s.metrics(ctx)
	case path == "/v1/evaluate":
		s.post(ctx, s.handleEvaluate)
	case path == "/v1/evaluate-all":
		s.post(ctx, s.handleEvaluateAll)
	case path == "/v1/recommend":
		s.post(ctx, s.handleRecommend)
	case path == "/v1/programs":
		s.get(ctx, s.handlePrograms)
	case strings.HasPrefix(path, programsPrefix):
		s.get(ctx, s.handleProgram)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (s *Server) post(ctx *fasthttp.RequestCtx, h fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	h(ctx)
}

func (s *Server) get(ctx *fasthttp.RequestCtx, h fasthttp.RequestHandler) {
	if !ctx.IsGet() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	h(ctx)
}

func (s *Server) decode(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	if s.health != nil {
		if err := s.health(s.base); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			s.writeError(ctx, fasthttp.StatusServiceUnavailable, "unhealthy")
			return
		}
	}
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEvaluate(ctx *fasthttp.RequestCtx) {
	var req EvaluateRequest
	if !s.decode(ctx, &req) {
		return
	}
	if req.ProgramID == "" {
		s.writeError(ctx, fasthttp.StatusBadRequest, "program_id is required")
		return
	}

	result, err := s.advisor.EvaluateProgram(s.base, req.ProgramID, req.Profile)
	if err != nil {
		s.writeAdvisorError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleEvaluateAll(ctx *fasthttp.RequestCtx) {
	var req EvaluateAllRequest
	if !s.decode(ctx, &req) {
		return
	}

	results := s.advisor.EvaluateCatalog(s.base, req.Profile)
	resp := EvaluateAllResponse{Results: results, Stats: eligibility.GetStats(results)}

	switch req.Status {
	case "":
	case eligibility.Eligible, eligibility.Ineligible, eligibility.Indeterminate:
		resp.Results = eligibility.FilterByStatus(results, req.Status)
		if resp.Results == nil {
			resp.Results = []eligibility.ProgramResult{}
		}
	default:
		s.writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("unknown status: %s", req.Status))
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleRecommend(ctx *fasthttp.RequestCtx) {
	var req RecommendRequest
	if !s.decode(ctx, &req) {
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, s.advisor.Recommend(s.base, req.Profile, req.MaxResults))
}

func (s *Server) handlePrograms(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	programs, err := s.advisor.Programs(s.base, catalog.Query{
		ActiveOnly:      args.GetBool("active"),
		AutomatableOnly: args.GetBool("automatable"),
		Category:        program.Category(args.Peek("category")),
		Search:          string(args.Peek("q")),
	})
	if err != nil {
		s.writeAdvisorError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, programs)
}

func (s *Server) handleProgram(ctx *fasthttp.RequestCtx) {
	id := strings.TrimPrefix(string(ctx.Path()), programsPrefix)
	if id == "" {
		s.writeError(ctx, fasthttp.StatusNotFound, "Not found")
		return
	}

	p, err := s.advisor.Program(s.base, id)
	if err != nil {
		s.writeAdvisorError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, p)
}

func (s *Server) writeAdvisorError(ctx *fasthttp.RequestCtx, err error) {
	if errors.Is(err, advisor.ErrProgramNotFound) {
		s.writeError(ctx, fasthttp.StatusNotFound, err.Error())
		return
	}
	s.logger.Error("request failed", zap.ByteString("path", ctx.Path()), zap.Error(err))
	s.writeError(ctx, fasthttp.StatusServiceUnavailable, "catalog unavailable")
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	s.writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
