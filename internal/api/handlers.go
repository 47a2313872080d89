package api

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/triageai/triage/internal/model"
	"github.com/triageai/triage/internal/scoring"
	"github.com/triageai/triage/internal/store"
	"github.com/triageai/triage/internal/validate"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"store":  "disconnected",
			"error":  err.Error(),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "store": "connected"})
}

// --- Metrics ---

type processMetrics struct {
	Goroutines   int    `json:"goroutines"`
	HeapAlloc    uint64 `json:"heap_alloc_bytes"`
	TotalAlloc   uint64 `json:"total_alloc_bytes"`
	NumGC        uint32 `json:"num_gc"`
	UptimeSecs   int64  `json:"uptime_seconds"`
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"cpu_count"`
	MemSysBytes  uint64 `json:"memory_sys_bytes"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	s.writeJSON(w, http.StatusOK, processMetrics{
		Goroutines:  runtime.NumGoroutine(),
		HeapAlloc:   ms.HeapAlloc,
		TotalAlloc:  ms.TotalAlloc,
		NumGC:       ms.NumGC,
		UptimeSecs:  int64(time.Since(s.started).Seconds()),
		GoVersion:   runtime.Version(),
		NumCPU:      runtime.NumCPU(),
		MemSysBytes: ms.Sys,
	})
}

// --- Symptom catalog ---

type symptomsResponse struct {
	Symptoms []model.Symptom `json:"symptoms"`
}

func (s *Server) handleSymptoms(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, symptomsResponse{Symptoms: scoring.CatalogSymptoms()})
}

// --- Cause validation ---

type validateCauseRequest struct {
	Cause string `json:"cause"`
}

func (s *Server) handleValidateCause(w http.ResponseWriter, r *http.Request) {
	var req validateCauseRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, scoring.ValidateCause(req.Cause))
}

// --- Assessment ---

type assessRequest struct {
	PatientAge        int             `json:"patient_age"`
	PatientGender     string          `json:"patient_gender"`
	MechanismOfInjury string          `json:"mechanism_of_injury,omitempty"`
	Symptoms          []model.Symptom `json:"symptoms"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if req.PatientAge < validate.AgeMin || req.PatientAge > validate.AgeMax {
		s.writeError(w, http.StatusBadRequest, "patient_age out of range")
		return
	}
	if len(req.Symptoms) == 0 {
		s.writeError(w, http.StatusBadRequest, "at least one symptom is required")
		return
	}

	assessment, err := scoring.Assess(req.Symptoms)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := &store.AssessmentRecord{
		PatientAge:               req.PatientAge,
		PatientGender:            req.PatientGender,
		MechanismOfInjury:        req.MechanismOfInjury,
		Symptoms:                 req.Symptoms,
		SeverityLevel:            assessment.SeverityLevel,
		EstimatedTimeToTreatment: assessment.EstimatedTimeToTreatment,
		RecommendedActions:       assessment.RecommendedActions,
		ConfidenceScore:          assessment.ConfidenceScore,
	}
	if err := s.store.SaveAssessment(r.Context(), rec); err != nil {
		s.log.Error().Err(err).Msg("saving assessment")
		s.writeError(w, http.StatusInternalServerError, "saving assessment")
		return
	}

	s.hub.broadcast(wsEvent{Type: wsEventAssessment, Assessment: rec})
	s.writeJSON(w, http.StatusOK, assessment)
}

type listAssessmentsResponse struct {
	Assessments []*store.AssessmentRecord `json:"assessments"`
	Total       int                       `json:"total"`
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	recs, total, err := s.store.ListAssessments(r.Context(), limit, offset)
	if err != nil {
		s.log.Error().Err(err).Msg("listing assessments")
		s.writeError(w, http.StatusInternalServerError, "listing assessments")
		return
	}
	s.writeJSON(w, http.StatusOK, listAssessmentsResponse{Assessments: recs, Total: total})
}

// --- Emergency contacts ---

type contactRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	CountryCode  string `json:"country_code"`
	PhoneNumber  string `json:"phone_number"`
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if err := validate.Name(req.Name); err != nil {
		s.writeError(w, http.StatusBadRequest, "name: "+err.Error())
		return
	}
	if err := validate.Name(req.Relationship); err != nil {
		s.writeError(w, http.StatusBadRequest, "relationship: "+err.Error())
		return
	}
	if err := validate.Phone(req.CountryCode, req.PhoneNumber); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := &store.ContactRecord{
		Name:         req.Name,
		Relationship: req.Relationship,
		CountryCode:  req.CountryCode,
		PhoneNumber:  req.PhoneNumber,
	}
	if err := s.store.SaveContact(r.Context(), rec); err != nil {
		s.log.Error().Err(err).Msg("saving contact")
		s.writeError(w, http.StatusInternalServerError, "saving contact")
		return
	}
	s.writeJSON(w, http.StatusCreated, rec)
}

type listContactsResponse struct {
	Contacts []*store.ContactRecord `json:"contacts"`
	Total    int                    `json:"total"`
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	recs, total, err := s.store.ListContacts(r.Context(), limit, offset)
	if err != nil {
		s.log.Error().Err(err).Msg("listing contacts")
		s.writeError(w, http.StatusInternalServerError, "listing contacts")
		return
	}
	s.writeJSON(w, http.StatusOK, listContactsResponse{Contacts: recs, Total: total})
}

func pageParams(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}
