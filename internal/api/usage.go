package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"medstock/m/domain"
)

// Usage and Alert Handlers

type usagePayload struct {
	MedicineID   string `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	QuantityUsed int    `json:"quantity_used"`
	UsedBy       string `json:"used_by"`
	Department   string `json:"department"`
	Purpose      string `json:"purpose"`
}

func (h *Handler) listUsage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.UsageRecords())
}

func (h *Handler) recordUsage(w http.ResponseWriter, r *http.Request) {
	var req usagePayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller := actor(r)
	in := domain.NewUsage{
		MedicineID:   strings.TrimSpace(req.MedicineID),
		MedicineName: strings.TrimSpace(req.MedicineName),
		QuantityUsed: req.QuantityUsed,
		UsedBy:       strings.TrimSpace(req.UsedBy),
		Department:   strings.TrimSpace(req.Department),
		Purpose:      strings.TrimSpace(req.Purpose),
	}
	if in.UsedBy == "" {
		in.UsedBy = caller.Name
	}
	if in.Department == "" {
		in.Department = caller.Department
	}
	if in.MedicineName == "" {
		if m, err := h.store.Medicine(in.MedicineID); err == nil {
			in.MedicineName = m.Name
		}
	}

	rec, err := h.store.RecordUsage(caller, in)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Alerts())
}

func (h *Handler) dismissAlert(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DismissAlert(chi.URLParam(r, "id")); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.publishAlerts()
	respondJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}
