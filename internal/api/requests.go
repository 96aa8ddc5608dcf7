package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"medstock/m/domain"
)

// Request Handlers

type submitRequestPayload struct {
	MedicineID        string          `json:"medicine_id"`
	MedicineName      string          `json:"medicine_name"`
	QuantityRequested int             `json:"quantity_requested"`
	Reason            string          `json:"reason"`
	Priority          domain.Priority `json:"priority"`
}

type reviewPayload struct {
	Notes string `json:"notes"`
}

func (h *Handler) listRequests(w http.ResponseWriter, r *http.Request) {
	viewer := actor(r)
	q := r.URL.Query()
	status := domain.RequestStatus(q.Get("status"))
	if status != "" && !validRequestStatus(status) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown request status %q", status))
		return
	}
	respondJSON(w, http.StatusOK, h.store.FilterRequests(*viewer, q.Get("query"), status))
}

func validRequestStatus(s domain.RequestStatus) bool {
	for _, known := range domain.RequestStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// submitRequest files a request in the caller's own name.
func (h *Handler) submitRequest(w http.ResponseWriter, r *http.Request) {
	var req submitRequestPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doctor := actor(r)
	created, err := h.store.SubmitRequest(doctor, domain.NewRequest{
		DoctorID:          doctor.ID,
		DoctorName:        doctor.Name,
		Department:        doctor.Department,
		MedicineID:        strings.TrimSpace(req.MedicineID),
		MedicineName:      strings.TrimSpace(req.MedicineName),
		QuantityRequested: req.QuantityRequested,
		Reason:            strings.TrimSpace(req.Reason),
		Priority:          req.Priority,
	})
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.publishAlerts()
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) approveRequest(w http.ResponseWriter, r *http.Request) {
	h.reviewRequest(w, r, h.store.ApproveRequest)
}

func (h *Handler) rejectRequest(w http.ResponseWriter, r *http.Request) {
	h.reviewRequest(w, r, h.store.RejectRequest)
}

func (h *Handler) reviewRequest(w http.ResponseWriter, r *http.Request, review func(*domain.User, string, string) error) {
	var req reviewPayload
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := review(actor(r), id, strings.TrimSpace(req.Notes)); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.publishAlerts()
	h.respondRequest(w, r, id)
}

func (h *Handler) dispenseRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DispenseRequest(actor(r), id); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.publishAlerts()
	h.respondRequest(w, r, id)
}

func (h *Handler) respondRequest(w http.ResponseWriter, r *http.Request, id string) {
	req, err := h.store.Request(id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}
