package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleet-workhours/internal/domain"
	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/validation"

	"github.com/go-chi/chi/v5"
)

// createWorkOrderRequest is the body of POST /v1/work-orders
type createWorkOrderRequest struct {
	Plate          string  `json:"plate"`
	Description    string  `json:"description"`
	CreatedAt      string  `json:"created_at"`
	EstimatedHours float64 `json:"estimated_hours"`
}

// estimateRequest is the body of PUT /v1/work-orders/{key}/estimate
type estimateRequest struct {
	EstimatedHours float64 `json:"estimated_hours"`
}

// atRequest carries an optional timestamp; empty means now
type atRequest struct {
	At     string `json:"at"`
	Reason string `json:"reason"`
}

func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && err != io.EOF {
		return errors.NewValidationError("invalid request body", err)
	}
	return nil
}

// queryTime parses a required timestamp query parameter
func (s *Server) queryTime(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, errors.NewInvalidInputError(name, value, "is required")
	}
	return validation.ParseTimestamp(value, s.loc)
}

// optionalTime parses value, returning the zero time when it is empty
func (s *Server) optionalTime(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return validation.ParseTimestamp(value, s.loc)
}

func filterFromQuery(r *http.Request) (domain.WorkOrderFilter, error) {
	var filter domain.WorkOrderFilter
	q := r.URL.Query()

	if plate := q.Get("plate"); plate != "" {
		filter.Plate = &plate
	}
	if open := q.Get("open"); open != "" {
		v, err := strconv.ParseBool(open)
		if err != nil {
			return filter, errors.NewInvalidInputError("open", open, "must be true or false")
		}
		filter.OpenOnly = v
	}
	if limit := q.Get("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil {
			return filter, errors.NewInvalidInputError("limit", limit, "must be an integer")
		}
		filter.Limit = v
	}
	return filter, nil
}

// ========== Calculators ==========

func (s *Server) handleElapsed(w http.ResponseWriter, r *http.Request) {
	start, err := s.queryTime(r, "start")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := s.queryTime(r, "end")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.api.Elapsed(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCompletion(w http.ResponseWriter, r *http.Request) {
	start, err := s.queryTime(r, "start")
	if err != nil {
		writeError(w, err)
		return
	}
	hours, err := validation.ParseHours(r.URL.Query().Get("hours"))
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.api.Completion(r.Context(), start, hours)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleWindow(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.api.Window(r.Context()))
}

// ========== Work orders ==========

func (s *Server) handleListWorkOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rows, err := s.api.ListProgress(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req createWorkOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	createdAt, err := s.optionalTime(req.CreatedAt)
	if err != nil {
		writeError(w, err)
		return
	}

	progress, err := s.api.OpenWorkOrder(r.Context(), req.Plate, req.Description, createdAt, req.EstimatedHours)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, progress)
}

func (s *Server) handleListOverdue(w http.ResponseWriter, r *http.Request) {
	orders, err := s.api.ListOverdue(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleGetWorkOrder(w http.ResponseWriter, r *http.Request) {
	detail, err := s.api.GetWorkOrderDetail(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDeleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.api.DeleteWorkOrder(r.Context(), chi.URLParam(r, "key")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReviseEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	progress, err := s.api.ReviseEstimate(r.Context(), chi.URLParam(r, "key"), req.EstimatedHours)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleCompleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req atRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	at, err := s.optionalTime(req.At)
	if err != nil {
		writeError(w, err)
		return
	}

	progress, err := s.api.CloseWorkOrder(r.Context(), chi.URLParam(r, "key"), at)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// ========== Pauses ==========

func (s *Server) handleListPauses(w http.ResponseWriter, r *http.Request) {
	pauses, err := s.api.ListPauses(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pauses)
}

func (s *Server) handleStartPause(w http.ResponseWriter, r *http.Request) {
	var req atRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	at, err := s.optionalTime(req.At)
	if err != nil {
		writeError(w, err)
		return
	}

	session, err := s.api.StartPause(r.Context(), chi.URLParam(r, "key"), req.Reason, at)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleStopPause(w http.ResponseWriter, r *http.Request) {
	var req atRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	at, err := s.optionalTime(req.At)
	if err != nil {
		writeError(w, err)
		return
	}

	session, err := s.api.StopPause(r.Context(), chi.URLParam(r, "key"), at)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// ========== Scheduling and reporting ==========

func (s *Server) handleCheckSchedule(w http.ResponseWriter, r *http.Request) {
	start, err := s.queryTime(r, "start")
	if err != nil {
		writeError(w, err)
		return
	}
	hours, err := validation.ParseHours(r.URL.Query().Get("hours"))
	if err != nil {
		writeError(w, err)
		return
	}

	check, err := s.api.CheckSchedule(r.Context(), start, hours)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := s.api.BuildReport(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
