package web

import "net/http"

func (s *Server) handleCompanyInfo(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	company, err := s.companies.Info(r.Context(), identity.Company.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, company, "")
}

func (s *Server) handleInspectors(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	inspectors, err := s.companies.Inspectors(r.Context(), identity.Company.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, inspectors, "")
}

func (s *Server) handleDepartments(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	departments, err := s.companies.Departments(r.Context(), identity.Company.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, departments, "")
}
