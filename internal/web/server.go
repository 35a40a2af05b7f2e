package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tagrapport/tagrapport/internal/filestore"
	"github.com/tagrapport/tagrapport/internal/service"
)

type Server struct {
	auth      *service.AuthService
	companies *service.CompanyService
	reports   *service.ReportService
	files     filestore.Store
	mux       *http.ServeMux
	logger    *slog.Logger
	devMode   bool
}

func NewServer(
	auth *service.AuthService,
	companies *service.CompanyService,
	reports *service.ReportService,
	files filestore.Store,
	logger *slog.Logger,
	devMode bool,
) *Server {
	s := &Server{
		auth:      auth,
		companies: companies,
		reports:   reports,
		files:     files,
		mux:       http.NewServeMux(),
		logger:    logger,
		devMode:   devMode,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /api/v1/auth/me", s.bearer(s.handleCurrentUser))

	s.mux.HandleFunc("GET /api/v1/company", s.tenant(s.handleCompanyInfo))
	s.mux.HandleFunc("GET /api/v1/company/inspectors", s.tenant(s.handleInspectors))
	s.mux.HandleFunc("GET /api/v1/company/departments", s.tenant(s.handleDepartments))

	s.mux.HandleFunc("GET /api/v1/reports", s.tenant(s.handleListReports))
	s.mux.HandleFunc("POST /api/v1/reports", s.tenant(s.handleCreateReport))
	s.mux.HandleFunc("GET /api/v1/reports/code/{code}", s.tenant(s.handleGetReportByCode))
	s.mux.HandleFunc("GET /api/v1/reports/{id}", s.tenant(s.handleGetReport))
	s.mux.HandleFunc("PUT /api/v1/reports/{id}", s.tenant(s.handleUpdateReport))
	s.mux.HandleFunc("DELETE /api/v1/reports/{id}", s.tenant(s.handleDeleteReport))

	// POST and PUT are aliases: both upsert.
	s.mux.HandleFunc("POST /api/v1/reports/{id}/checklist", s.tenant(s.handleUpsertChecklist))
	s.mux.HandleFunc("PUT /api/v1/reports/{id}/checklist", s.tenant(s.handleUpsertChecklist))

	s.mux.HandleFunc("POST /api/v1/reports/{reportId}/findings", s.tenant(s.handleCreateFinding))
	s.mux.HandleFunc("DELETE /api/v1/reports/{reportId}/findings/{findingId}", s.tenant(s.handleDeleteFinding))

	s.mux.HandleFunc("POST /api/v1/reports/{reportId}/findings/{findingId}/images", s.tenant(s.handleUploadImages))
	s.mux.HandleFunc("GET /api/v1/reports/{reportId}/images", s.tenant(s.handleListImages))
	s.mux.HandleFunc("DELETE /api/v1/reports/images/{imageId}", s.tenant(s.handleDeleteImage))

	s.mux.HandleFunc("GET /uploads/{file}", s.handleServeUpload)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"}, "")
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}
