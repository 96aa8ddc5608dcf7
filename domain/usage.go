package domain

import "time"

// UsageRecord logs stock leaving the pharmacy. Records are never edited.
type UsageRecord struct {
	ID           string    `json:"id"`
	MedicineID   string    `json:"medicine_id"`
	MedicineName string    `json:"medicine_name"`
	QuantityUsed int       `json:"quantity_used"`
	UsedBy       string    `json:"used_by"`
	Department   string    `json:"department"`
	Date         time.Time `json:"date"`
	Purpose      string    `json:"purpose"`
}

type NewUsage struct {
	MedicineID   string `json:"medicine_id" validate:"required"`
	MedicineName string `json:"medicine_name" validate:"required"`
	QuantityUsed int    `json:"quantity_used" validate:"gt=0"`
	UsedBy       string `json:"used_by" validate:"required"`
	Department   string `json:"department"`
	Purpose      string `json:"purpose"`
}
