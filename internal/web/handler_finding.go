package web

import (
	"net/http"

	"github.com/tagrapport/tagrapport/internal/service"
)

func (s *Server) handleCreateFinding(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var in service.FindingInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	finding, err := s.reports.CreateFinding(r.Context(), identity.Company.ID, r.PathValue("reportId"), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusCreated, finding, "Finding created successfully")
}

func (s *Server) handleDeleteFinding(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	err := s.reports.DeleteFinding(r.Context(), identity.Company.ID, r.PathValue("reportId"), r.PathValue("findingId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, nil, "Finding deleted successfully")
}
