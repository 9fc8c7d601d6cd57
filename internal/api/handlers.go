// Package api serves the working week, saved history and summaries as a
// read-only JSON API for dashboards.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tiliavir/timesheet/internal/export"
	"github.com/Tiliavir/timesheet/internal/logging"
	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/summary"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

// Records is the read side of storage.Store.
type Records interface {
	Working() (model.Week, error)
	History() ([]model.Week, error)
	Projects() ([]model.Project, error)
}

type Handler struct {
	records Records
	logger  *slog.Logger
}

func NewHandler(records Records, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{records: records, logger: logger}
}

// GetWeek returns the working week with its totals.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	week, err := h.records.Working()
	if err != nil {
		h.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewWeekView(week))
}

// ExportWeekCSV downloads the working week in the timesheet CSV layout.
func (h *Handler) ExportWeekCSV(w http.ResponseWriter, r *http.Request) {
	week, err := h.records.Working()
	if err != nil {
		h.storageError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(week, "csv")+`"`)
	if err := export.WriteCSV(w, week); err != nil {
		h.logger.Error("writing csv response", "error", err)
	}
}

// GetSummary aggregates history. With ?clients=true project keys carry the
// client name.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	history, err := h.records.History()
	if err != nil {
		h.storageError(w, err)
		return
	}
	s := summary.Summarize(history)
	if withClients, _ := strconv.ParseBool(r.URL.Query().Get("clients")); withClients {
		projects, err := h.records.Projects()
		if err != nil {
			h.storageError(w, err)
			return
		}
		s.ByProject = summary.WithClients(s.ByProject, projects)
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.records.History()
	if err != nil {
		h.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewHistoryItems(history))
}

// nameParam returns the decoded {name} path parameter. chi matches on the raw
// path when one is set, so the value may still be percent-encoded.
func nameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, true
	}
	name, err := url.PathUnescape(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid name", err)
		return "", false
	}
	return name, true
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	name, ok := nameParam(w, r)
	if !ok {
		return
	}
	history, err := h.records.History()
	if err != nil {
		h.storageError(w, err)
		return
	}
	weeks := summary.EmployeeDetail(history, name)
	if len(weeks) == 0 {
		writeError(w, http.StatusNotFound, "employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"employee": name, "weeks": weeks})
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.records.Projects()
	if err != nil {
		h.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	name, ok := nameParam(w, r)
	if !ok {
		return
	}
	history, err := h.records.History()
	if err != nil {
		h.storageError(w, err)
		return
	}
	projects, err := h.records.Projects()
	if err != nil {
		h.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary.ProjectDetail(history, name, projects))
}

// ClockOptions lists the quarter-hour values offered by time pickers.
func (h *Handler) ClockOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, timecalc.ClockOptions())
}

func (h *Handler) storageError(w http.ResponseWriter, err error) {
	h.logger.Error("storage error", "error", err)
	writeError(w, http.StatusInternalServerError, "storage error", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
