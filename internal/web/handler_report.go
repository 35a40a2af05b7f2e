package web

import (
	"net/http"
	"strconv"

	"github.com/tagrapport/tagrapport/internal/domain"
	"github.com/tagrapport/tagrapport/internal/service"
)

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	page, err := queryInt(r, "page", 1)
	if err != nil {
		s.respondError(w, r, domain.Invalid("page", "page must be a positive integer"))
		return
	}
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		s.respondError(w, r, domain.Invalid("limit", "limit must be between 1 and 100"))
		return
	}

	result, err := s.reports.List(r.Context(), identity.Company.ID, page, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, result, "")
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	report, err := s.reports.Get(r.Context(), identity.Company.ID, r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, report, "")
}

func (s *Server) handleGetReportByCode(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	report, err := s.reports.GetByCode(r.Context(), identity.Company.ID, r.PathValue("code"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, report, "")
}

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var in service.CreateReportInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	report, err := s.reports.Create(r.Context(), identity.Company, in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusCreated, report, "Report created successfully")
}

func (s *Server) handleUpdateReport(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var in service.UpdateReportInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	report, err := s.reports.Update(r.Context(), identity.Company, r.PathValue("id"), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, report, "Report updated successfully")
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	if err := s.reports.Delete(r.Context(), identity.Company.ID, r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, nil, "Report deleted successfully")
}

func (s *Server) handleUpsertChecklist(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var in service.ChecklistInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	checklist, err := s.reports.UpsertChecklist(r.Context(), identity.Company.ID, r.PathValue("id"), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, checklist, "")
}

// queryInt parses an optional positive integer query parameter.
func queryInt(r *http.Request, name string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(raw)
}
