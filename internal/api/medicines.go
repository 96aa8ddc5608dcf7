package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"medstock/m/domain"
)

// Medicine Handlers

type medicineRequest struct {
	Name              string          `json:"name"`
	GenericName       string          `json:"generic_name"`
	Category          string          `json:"category"`
	Manufacturer      string          `json:"manufacturer"`
	BatchNumber       string          `json:"batch_number"`
	ExpiryDate        string          `json:"expiry_date"`
	QuantityInStock   int             `json:"quantity_in_stock"`
	MinimumStockLevel int             `json:"minimum_stock_level"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Location          string          `json:"location"`
	Description       string          `json:"description"`
}

func (req medicineRequest) toDomain() (domain.NewMedicine, error) {
	expiry, err := domain.ParseDate(req.ExpiryDate)
	if err != nil {
		return domain.NewMedicine{}, err
	}
	return domain.NewMedicine{
		Name:              strings.TrimSpace(req.Name),
		GenericName:       strings.TrimSpace(req.GenericName),
		Category:          strings.TrimSpace(req.Category),
		Manufacturer:      strings.TrimSpace(req.Manufacturer),
		BatchNumber:       strings.TrimSpace(req.BatchNumber),
		ExpiryDate:        expiry,
		QuantityInStock:   req.QuantityInStock,
		MinimumStockLevel: req.MinimumStockLevel,
		UnitPrice:         req.UnitPrice,
		Location:          strings.TrimSpace(req.Location),
		Description:       strings.TrimSpace(req.Description),
	}, nil
}

type medicineUpdateRequest struct {
	Name              *string          `json:"name"`
	GenericName       *string          `json:"generic_name"`
	Category          *string          `json:"category"`
	Manufacturer      *string          `json:"manufacturer"`
	BatchNumber       *string          `json:"batch_number"`
	ExpiryDate        *string          `json:"expiry_date"`
	QuantityInStock   *int             `json:"quantity_in_stock"`
	MinimumStockLevel *int             `json:"minimum_stock_level"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
	Location          *string          `json:"location"`
	Description       *string          `json:"description"`
}

func (req medicineUpdateRequest) toDomain() (domain.MedicineUpdate, error) {
	upd := domain.MedicineUpdate{
		Name:              req.Name,
		GenericName:       req.GenericName,
		Category:          req.Category,
		Manufacturer:      req.Manufacturer,
		BatchNumber:       req.BatchNumber,
		QuantityInStock:   req.QuantityInStock,
		MinimumStockLevel: req.MinimumStockLevel,
		UnitPrice:         req.UnitPrice,
		Location:          req.Location,
		Description:       req.Description,
	}
	if req.ExpiryDate != nil {
		expiry, err := domain.ParseDate(*req.ExpiryDate)
		if err != nil {
			return domain.MedicineUpdate{}, err
		}
		upd.ExpiryDate = &expiry
	}
	return upd, nil
}

func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respondJSON(w, http.StatusOK, h.store.SearchMedicines(q.Get("query"), q.Get("category")))
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Categories())
}

func (h *Handler) getMedicine(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.Medicine(chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *Handler) addMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toDomain()
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("expiry_date: %v", err))
		return
	}

	m, err := h.store.AddMedicine(actor(r), in)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.publishAlerts()
	respondJSON(w, http.StatusCreated, m)
}

func (h *Handler) updateMedicine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// The store ignores updates to unknown ids, so the lookup happens here.
	if _, err := h.store.Medicine(id); err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var req medicineUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	upd, err := req.toDomain()
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("expiry_date: %v", err))
		return
	}

	if err := h.store.UpdateMedicine(actor(r), id, upd); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	h.publishAlerts()

	m, err := h.store.Medicine(id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *Handler) expiryReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := domain.ExpiryStatus(q.Get("status"))
	if status != "" && !validExpiryStatus(status) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown expiry status %q", status))
		return
	}
	respondJSON(w, http.StatusOK, h.store.ExpiryReport(status, q.Get("query")))
}

func validExpiryStatus(s domain.ExpiryStatus) bool {
	for _, known := range domain.ExpiryStatuses {
		if s == known {
			return true
		}
	}
	return false
}
