package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"medstock/m/internal/analytics"
)

const defaultWindowDays = 30

// Report Handlers

func (h *Handler) analyticsReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.computeReport(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) exportAnalytics(w http.ResponseWriter, r *http.Request) {
	report, ok := h.computeReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=analytics-%dd.csv", report.WindowDays))
	w.WriteHeader(http.StatusOK)
	if err := analytics.WriteCSV(w, report); err != nil {
		h.logger.Warn("analytics export interrupted", zap.Error(err))
	}
}

func (h *Handler) computeReport(w http.ResponseWriter, r *http.Request) (analytics.Report, bool) {
	days, err := parseWindow(r.URL.Query().Get("days"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return analytics.Report{}, false
	}
	snap := h.store.Snapshot()
	report, err := analytics.Compute(snap.Medicines, snap.Requests, snap.Usage, days, snap.Now)
	if err != nil {
		h.respondStoreError(w, r, err)
		return analytics.Report{}, false
	}
	return report, true
}

// parseWindow accepts only the lookback periods offered in the UI.
func parseWindow(raw string) (int, error) {
	if raw == "" {
		return defaultWindowDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("days must be a number")
	}
	for _, allowed := range analytics.Windows {
		if days == allowed {
			return days, nil
		}
	}
	return 0, fmt.Errorf("days must be one of %v", analytics.Windows)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	respondJSON(w, http.StatusOK, analytics.Dashboard(snap.Medicines, snap.Requests, snap.Usage, snap.Alerts))
}
