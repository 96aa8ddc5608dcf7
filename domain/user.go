package domain

// Role is the job a staff member logs in under.
type Role string

const (
	RoleDoctor     Role = "doctor"
	RolePharmacist Role = "pharmacist"
	RoleAdmin      Role = "admin"
)

// Action names a store operation that is gated by role.
type Action string

const (
	ActionSubmitRequest Action = "submit_request"
	ActionManageStock   Action = "manage_stock"
	ActionReviewRequest Action = "review_request"
	ActionDispense      Action = "dispense"
	ActionRecordUsage   Action = "record_usage"
)

var capabilities = map[Role][]Action{
	RoleDoctor:     {ActionSubmitRequest},
	RolePharmacist: {ActionManageStock, ActionReviewRequest, ActionDispense, ActionRecordUsage},
	RoleAdmin:      {ActionSubmitRequest, ActionManageStock, ActionReviewRequest, ActionDispense, ActionRecordUsage},
}

// Can reports whether the role may perform the action.
func (r Role) Can(a Action) bool {
	for _, allowed := range capabilities[r] {
		if allowed == a {
			return true
		}
	}
	return false
}

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
}
