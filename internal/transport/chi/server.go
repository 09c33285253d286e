package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/domain/filing"
	"github.com/kailas-cloud/sectool/internal/domain/fulltext"
	"github.com/kailas-cloud/sectool/internal/domain/tool"
	"github.com/kailas-cloud/sectool/internal/metrics"
	oaibridge "github.com/kailas-cloud/sectool/internal/transport/openai"
	healthuc "github.com/kailas-cloud/sectool/internal/usecase/health"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeUnauthorized     = "unauthorized"
	CodeNotFound         = "not_found"
	CodeConfiguration    = "configuration_error"
	CodeUpstream         = "upstream_error"
	CodeInternal         = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToolsResponse lists the tools served by this instance.
type ToolsResponse struct {
	Tools  []tool.Descriptor `json:"tools"`
	OpenAI []openai.Tool     `json:"openai"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// toolService is the query router (router.Service).
type toolService interface {
	Run(ctx context.Context, text string) (domain.Result, error)
	FilingSearch(ctx context.Context, p filing.Params) (domain.Result, error)
	FullTextSearch(ctx context.Context, p fulltext.Params) (domain.Result, error)
}

// healthChecker aggregates component checks (health.Service).
type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the sec_api tool over HTTP.
type Server struct {
	tool          toolService
	health        healthChecker
	descriptor    tool.Descriptor
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc toolService, health healthChecker, logger *zap.Logger) *Server {
	s := &Server{
		tool:       svc,
		health:     health,
		descriptor: tool.SECAPI(),
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrConfiguration, http.StatusInternalServerError, CodeConfiguration),
		sentinelHandler(domain.ErrUpstream, http.StatusBadGateway, CodeUpstream),
	}
	return s
}

// Routes mounts all endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/tools", s.ListTools)
		r.Post("/tools/{tool}/invoke", s.InvokeTool)
		r.Get("/filings/{ticker}", s.GetFilings)
		r.Get("/full-text", s.FullTextSearch)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "not found")
	})
}

// ListTools handles GET /v1/tools.
func (s *Server) ListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ToolsResponse{
		Tools:  []tool.Descriptor{s.descriptor},
		OpenAI: []openai.Tool{oaibridge.Definition(s.descriptor)},
	})
}

// InvokeTool handles POST /v1/tools/{tool}/invoke.
// The body is the tool input; keys other than "query" are ignored.
func (s *Server) InvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tool")
	if name != s.descriptor.Name {
		writeError(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("unknown tool %q", name))
		return
	}

	var in tool.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	res, err := s.tool.Run(r.Context(), in.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetFilings handles GET /v1/filings/{ticker}.
func (s *Server) GetFilings(w http.ResponseWriter, r *http.Request) {
	var ticker string
	err := runtime.BindStyledParameterWithOptions("simple", "ticker", chi.URLParam(r, "ticker"), &ticker,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath})
	if err != nil {
		writeParamError(w, "ticker", err)
		return
	}

	var params struct {
		FormType *string
		DateFrom *string
		DateTo   *string
		Limit    *int
	}
	q := r.URL.Query()
	binds := []struct {
		name string
		dest any
	}{
		{"form_type", &params.FormType},
		{"date_from", &params.DateFrom},
		{"date_to", &params.DateTo},
		{"limit", &params.Limit},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			writeParamError(w, b.name, err)
			return
		}
	}

	opts := []filing.Option{
		filing.WithFormType(deref(params.FormType)),
		filing.WithDateRange(deref(params.DateFrom), deref(params.DateTo)),
	}
	if params.Limit != nil {
		opts = append(opts, filing.WithLimit(*params.Limit))
	}
	p, err := filing.New(ticker, opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	res, err := s.tool.FilingSearch(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// FullTextSearch handles GET /v1/full-text.
func (s *Server) FullTextSearch(w http.ResponseWriter, r *http.Request) {
	var params struct {
		Q         string
		FormTypes *[]string
		DateFrom  *string
		DateTo    *string
		Limit     *int
	}
	q := r.URL.Query()
	binds := []struct {
		name     string
		required bool
		dest     any
	}{
		{"q", true, &params.Q},
		{"form_types", false, &params.FormTypes},
		{"date_from", false, &params.DateFrom},
		{"date_to", false, &params.DateTo},
		{"limit", false, &params.Limit},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, b.required, b.name, q, b.dest); err != nil {
			writeParamError(w, b.name, err)
			return
		}
	}

	opts := []fulltext.Option{
		fulltext.WithDateRange(deref(params.DateFrom), deref(params.DateTo)),
	}
	if params.FormTypes != nil {
		opts = append(opts, fulltext.WithFormTypes(*params.FormTypes...))
	}
	if params.Limit != nil {
		opts = append(opts, fulltext.WithLimit(*params.Limit))
	}

	res, err := s.tool.FullTextSearch(r.Context(), fulltext.New(params.Q, opts...))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics.Handler().ServeHTTP(w, r)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeParamError(w http.ResponseWriter, name string, err error) {
	writeError(w, http.StatusBadRequest, CodeBadRequest,
		fmt.Sprintf("Invalid format for parameter %s: %v", name, err))
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// Tool errors carry no secrets, so the message is passed through for the agent.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}
