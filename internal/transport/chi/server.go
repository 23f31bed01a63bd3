package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sigimsae/internal/domain"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/filter"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/mode"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/request"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/result"
	"github.com/kailas-cloud/sigimsae/internal/logger"
	catalogsvc "github.com/kailas-cloud/sigimsae/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/sigimsae/internal/usecase/health"
	historyuc "github.com/kailas-cloud/sigimsae/internal/usecase/history"
	searchuc "github.com/kailas-cloud/sigimsae/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves search, history and catalog browsing over HTTP.
type Server struct {
	catalog       *catalogsvc.Service
	search        *searchuc.Service
	history       *historyuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	defaultLimit  int
	errorHandlers []errorHandler
	metrics       http.Handler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *catalogsvc.Service,
	search *searchuc.Service,
	history *historyuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		catalog: catalog,
		search:  search,
		history: history,
		health:  health,
		logger:  logger,
		metrics: promhttp.Handler(),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeRecordNotFound),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, ErrorCodeCatalogUnavailable),
	}
	return s
}

// WithDefaultLimit sets the result limit used when a search request has none.
func (s *Server) WithDefaultLimit(n int) *Server {
	if n > 0 {
		s.defaultLimit = n
	}
	return s
}

// Register mounts all routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/search", s.Search)
	r.Get("/suggestions", s.Suggestions)
	r.Get("/history", s.ListHistory)
	r.Delete("/history", s.ClearHistory)
	r.Get("/records", s.ListRecords)
	r.Get("/records/{id}", s.GetRecord)
	r.Get("/instruments", s.ListInstruments)
	r.Get("/categories", s.ListCategories)
	r.Get("/stats", s.Stats)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	req, err := s.searchRequestFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]RecordResponse, len(results))
	for i := range results {
		items[i] = resultToResponse(&results[i])
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Items: items,
		Total: len(items),
		Stats: result.Summarize(results),
	})
}

// Suggestions handles GET /suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q.Get("max"))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "max must be an integer")
		return
	}

	items, err := s.search.Suggestions(r.Context(), q.Get("q"), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StringsResponse{Items: items})
}

// ListHistory handles GET /history.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StringsResponse{Items: s.history.List(r.Context())})
}

// ClearHistory handles DELETE /history.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	s.history.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ListRecords handles GET /records with optional instrument/category/type filters.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}
	if s.notModified(w, r) {
		return
	}

	records, err := s.catalog.Filter(f)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: recordsToResponse(records), Total: len(records)})
}

// GetRecord handles GET /records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if s.notModified(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, recordToResponse(&rec))
}

// ListInstruments handles GET /instruments.
func (s *Server) ListInstruments(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.Instruments()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, InstrumentsResponse{Items: items})
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.Categories()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if items == nil {
		items = []string{}
	}
	writeJSON(w, http.StatusOK, StringsResponse{Items: items})
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := s.catalog.Statistics()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Records: report.Records,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

// notModified sets the catalog ETag and answers 304 when the client already has it.
func (s *Server) notModified(w http.ResponseWriter, r *http.Request) bool {
	fp, err := s.catalog.Fingerprint()
	if err != nil {
		return false
	}
	etag := strconv.Quote(strconv.FormatUint(fp, 16))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (s *Server) searchRequestFromQuery(r *http.Request) (request.Request, error) {
	q := r.URL.Query()

	f, err := filterFromQuery(r)
	if err != nil {
		return request.Request{}, err
	}

	var threshold *float64
	if raw := q.Get("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return request.Request{}, errors.New("threshold must be a number")
		}
		threshold = &v
	}

	limit := s.defaultLimit
	if raw := q.Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return request.Request{}, errors.New("limit must be an integer")
		}
	}

	caseSensitive := false
	if raw := q.Get("case_sensitive"); raw != "" {
		if caseSensitive, err = strconv.ParseBool(raw); err != nil {
			return request.Request{}, errors.New("case_sensitive must be a boolean")
		}
	}

	return request.New(q.Get("q"), mode.Mode(q.Get("mode")), f, threshold, caseSensitive, limit)
}

// filterFromQuery accepts repeated and comma-separated values: ?instrument=장구&instrument=피리 or ?type=a,b.
func filterFromQuery(r *http.Request) (filter.Filter, error) {
	q := r.URL.Query()
	return filter.New(splitValues(q["instrument"]), splitValues(q["category"]), splitValues(q["type"]))
}

func splitValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrInvalidRequest,
		domain.ErrCatalogUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
