package domain

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusDispensed RequestStatus = "dispensed"
)

// RequestStatuses lists every status in lifecycle order.
var RequestStatuses = []RequestStatus{StatusPending, StatusApproved, StatusRejected, StatusDispensed}

var transitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusDispensed},
}

// CanTransition reports whether a request may move from one status to another.
// Rejected and dispensed are terminal.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s RequestStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

type Request struct {
	ID                string        `json:"id"`
	DoctorID          string        `json:"doctor_id"`
	DoctorName        string        `json:"doctor_name"`
	Department        string        `json:"department"`
	MedicineID        string        `json:"medicine_id"`
	MedicineName      string        `json:"medicine_name"`
	QuantityRequested int           `json:"quantity_requested"`
	Reason            string        `json:"reason"`
	Priority          Priority      `json:"priority"`
	Status            RequestStatus `json:"status"`
	RequestedDate     time.Time     `json:"requested_date"`
	ApprovedDate      *time.Time    `json:"approved_date,omitempty"`
	DispensedDate     *time.Time    `json:"dispensed_date,omitempty"`
	ApprovedBy        string        `json:"approved_by,omitempty"`
	Notes             string        `json:"notes,omitempty"`
}

// NewRequest is what a doctor submits; id, status and timestamp are assigned by the store.
type NewRequest struct {
	DoctorID          string   `json:"doctor_id" validate:"required"`
	DoctorName        string   `json:"doctor_name" validate:"required"`
	Department        string   `json:"department"`
	MedicineID        string   `json:"medicine_id" validate:"required"`
	MedicineName      string   `json:"medicine_name"`
	QuantityRequested int      `json:"quantity_requested" validate:"gt=0"`
	Reason            string   `json:"reason" validate:"required"`
	Priority          Priority `json:"priority" validate:"oneof=low medium high urgent"`
}
