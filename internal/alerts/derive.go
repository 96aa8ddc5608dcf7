// Package alerts computes the notification set shown to pharmacy staff.
// Alerts hold no state of their own: the same medicines, requests and clock
// always produce the same alerts.
package alerts

import (
	"fmt"
	"time"

	"medstock/m/domain"
)

const (
	day   = 24 * time.Hour
	month = 30 * day

	expiryWindowMonths   = 3.0
	expiryCriticalMonths = 1.0
	staleAfterDays       = 1.0
	overdueAfterDays     = 3.0
)

// Derive builds the alert list for the given collections at time now.
// Per medicine the expiry alert precedes the stock alert; request alerts follow
// all medicine alerts in request order.
func Derive(medicines []domain.Medicine, requests []domain.Request, now time.Time) []domain.Alert {
	out := make([]domain.Alert, 0)

	for _, m := range medicines {
		if a, ok := expiryAlert(m, now); ok {
			out = append(out, a)
		}
		if a, ok := stockAlert(m, now); ok {
			out = append(out, a)
		}
	}

	for _, r := range requests {
		if a, ok := staleRequestAlert(r, now); ok {
			out = append(out, a)
		}
	}

	return out
}

// MonthsUntilExpiry measures the time to expiry in 30-day months.
func MonthsUntilExpiry(m domain.Medicine, now time.Time) float64 {
	return float64(domain.CalendarDate(m.ExpiryDate).Sub(now)) / float64(month)
}

// Already-expired stock produces no alert here; the expiry report classifies it instead.
func expiryAlert(m domain.Medicine, now time.Time) (domain.Alert, bool) {
	months := MonthsUntilExpiry(m, now)
	if months <= 0 || months > expiryWindowMonths {
		return domain.Alert{}, false
	}
	severity := domain.SeverityMedium
	if months <= expiryCriticalMonths {
		severity = domain.SeverityHigh
	}
	return domain.Alert{
		ID:         "expiry-" + m.ID,
		Type:       domain.AlertExpiry,
		Message:    fmt.Sprintf("%s expires on %s", m.Name, m.ExpiryDate.Format(domain.DateLayout)),
		Severity:   severity,
		Date:       now,
		MedicineID: m.ID,
	}, true
}

func stockAlert(m domain.Medicine, now time.Time) (domain.Alert, bool) {
	if m.QuantityInStock > m.MinimumStockLevel {
		return domain.Alert{}, false
	}
	severity := domain.SeverityMedium
	if m.QuantityInStock == 0 {
		severity = domain.SeverityHigh
	}
	return domain.Alert{
		ID:         "stock-" + m.ID,
		Type:       domain.AlertStock,
		Message:    fmt.Sprintf("%s is running low (%d remaining)", m.Name, m.QuantityInStock),
		Severity:   severity,
		Date:       now,
		MedicineID: m.ID,
	}, true
}

func staleRequestAlert(r domain.Request, now time.Time) (domain.Alert, bool) {
	if r.Status != domain.StatusPending {
		return domain.Alert{}, false
	}
	days := float64(now.Sub(r.RequestedDate)) / float64(day)
	if days <= staleAfterDays {
		return domain.Alert{}, false
	}
	severity := domain.SeverityMedium
	if days > overdueAfterDays {
		severity = domain.SeverityHigh
	}
	return domain.Alert{
		ID:        "request-" + r.ID,
		Type:      domain.AlertRequest,
		Message:   fmt.Sprintf("Pending request from %s for %s", r.DoctorName, r.MedicineName),
		Severity:  severity,
		Date:      now,
		RequestID: r.ID,
	}, true
}
