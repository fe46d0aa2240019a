package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rshade/metalca/internal/engine"
	"github.com/rshade/metalca/internal/impact"
	"github.com/rshade/metalca/internal/logging"
	"github.com/rshade/metalca/internal/scenario"
)

// errorBody is the JSON shape of every non-2xx response.
type errorBody struct {
	Error  string                `json:"error"`
	Fields []scenario.FieldError `json:"fields,omitempty"`
	Table  string                `json:"table,omitempty"`
	Key    string                `json:"key,omitempty"`
}

type healthBody struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Version: s.version})
}

func (s *Server) handleMaterials(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, impact.ReferenceCatalog())
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.metrics.assessments.WithLabelValues(outcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	spec := scenario.Defaults()
	if err = json.Unmarshal(body, &spec); err != nil {
		s.metrics.assessments.WithLabelValues(outcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("decoding scenario: %v", err)})
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "request"
	}

	start := time.Now()
	assessment, err := s.assessor.AssessSpec(r.Context(), name, spec)
	if err != nil {
		s.writeAssessError(w, r, err)
		return
	}
	s.observe(assessment, time.Since(start))
	writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleAssessBatch(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	file, err := scenario.Parse(body, scenario.FormatJSON)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, scenario.ErrUnsupportedVersion) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, errorBody{Error: err.Error()})
		return
	}

	result, err := s.assessor.AssessBatch(r.Context(), file.Named("request"))
	if err != nil && result == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Warn().
			Ctx(r.Context()).
			Str("component", "server").
			Err(err).
			Msg("batch request ended early")
	}

	for _, item := range result.Items {
		if item.Assessment != nil {
			s.metrics.assessments.WithLabelValues(outcomeOK).Inc()
			s.metrics.circularityScore.Observe(float64(item.Assessment.Report.CircularityScore))
			continue
		}
		s.metrics.assessments.WithLabelValues(outcomeFor(item.Err)).Inc()
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeAssessError(w http.ResponseWriter, r *http.Request, err error) {
	s.metrics.assessments.WithLabelValues(outcomeFor(err)).Inc()

	var verr *scenario.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: scenario.ErrInvalidScenario.Error(), Fields: verr.Fields})
		return
	}
	var refErr *impact.ReferenceError
	if errors.As(err, &refErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: refErr.Error(), Table: refErr.Table, Key: refErr.Key})
		return
	}
	if errors.Is(err, scenario.ErrInvalidScenario) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	logging.FromContext(r.Context()).Error().
		Ctx(r.Context()).
		Str("component", "server").
		Err(err).
		Msg("assessment failed")
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}

func (s *Server) observe(a *engine.Assessment, d time.Duration) {
	s.metrics.assessments.WithLabelValues(outcomeOK).Inc()
	s.metrics.assessDuration.Observe(d.Seconds())
	s.metrics.circularityScore.Observe(float64(a.Report.CircularityScore))
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, scenario.ErrInvalidScenario):
		return outcomeInvalid
	case errors.Is(err, impact.ErrUnresolvedReference):
		return outcomeUnresolved
	default:
		return outcomeError
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	if len(body) == 0 {
		return nil, errors.New("request body is empty")
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
