package domain

import "time"

type AlertType string

const (
	AlertExpiry  AlertType = "expiry"
	AlertStock   AlertType = "stock"
	AlertRequest AlertType = "request"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Alert is derived from the current medicines and requests and never stored on its own.
type Alert struct {
	ID         string    `json:"id"`
	Type       AlertType `json:"type"`
	Message    string    `json:"message"`
	Severity   Severity  `json:"severity"`
	Date       time.Time `json:"date"`
	MedicineID string    `json:"medicine_id,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
}
