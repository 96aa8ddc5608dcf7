package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/m/domain"
)

var now = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func medicine(id string, expiresInDays, qty, min int) domain.Medicine {
	return domain.Medicine{
		ID:                id,
		Name:              "Med " + id,
		ExpiryDate:        domain.CalendarDate(now).AddDate(0, 0, expiresInDays),
		QuantityInStock:   qty,
		MinimumStockLevel: min,
	}
}

func byID(list []domain.Alert) map[string]domain.Alert {
	out := make(map[string]domain.Alert, len(list))
	for _, a := range list {
		out[a.ID] = a
	}
	return out
}

func TestStockAlertSeverity(t *testing.T) {
	got := byID(Derive([]domain.Medicine{
		medicine("empty", 400, 0, 50),
		medicine("low", 400, 30, 50),
		medicine("edge", 400, 50, 50),
		medicine("fine", 400, 51, 50),
	}, nil, now))

	require.Contains(t, got, "stock-empty")
	assert.Equal(t, domain.SeverityHigh, got["stock-empty"].Severity)
	assert.Equal(t, "Med empty is running low (0 remaining)", got["stock-empty"].Message)

	assert.Equal(t, domain.SeverityMedium, got["stock-low"].Severity)
	assert.Equal(t, domain.SeverityMedium, got["stock-edge"].Severity)
	assert.NotContains(t, got, "stock-fine")
}

func TestExpiryAlertWindow(t *testing.T) {
	got := byID(Derive([]domain.Medicine{
		medicine("soon", 20, 100, 10),
		medicine("later", 60, 100, 10),
		medicine("far", 120, 100, 10),
		medicine("gone", -3, 100, 10),
	}, nil, now))

	require.Contains(t, got, "expiry-soon")
	assert.Equal(t, domain.SeverityHigh, got["expiry-soon"].Severity)
	assert.Equal(t, domain.AlertExpiry, got["expiry-soon"].Type)
	assert.Equal(t, "soon", got["expiry-soon"].MedicineID)
	assert.Contains(t, got["expiry-soon"].Message, "expires on 2026-11-04")

	require.Contains(t, got, "expiry-later")
	assert.Equal(t, domain.SeverityMedium, got["expiry-later"].Severity)

	assert.NotContains(t, got, "expiry-far")
	assert.NotContains(t, got, "expiry-gone", "expired stock is reported by the expiry report, not as an alert")
}

func TestExpiryAlertMonthBoundaries(t *testing.T) {
	midnight := domain.CalendarDate(now)

	tests := []struct {
		name     string
		days     int
		at       time.Time
		want     bool
		severity domain.Severity
	}{
		{"expires later today", 0, now, false, ""},
		{"expires at this midnight", 0, midnight, false, ""},
		{"tomorrow", 1, now, true, domain.SeverityHigh},
		{"exactly one month", 30, midnight, true, domain.SeverityHigh},
		{"just under one month", 30, now, true, domain.SeverityHigh},
		{"just over one month", 31, midnight, true, domain.SeverityMedium},
		{"one month and fifteen hours", 31, now, true, domain.SeverityMedium},
		{"exactly three months", 90, midnight, true, domain.SeverityMedium},
		{"just under three months", 90, now, true, domain.SeverityMedium},
		{"just over three months", 91, now, false, ""},
		{"a second past three months", 90, midnight.Add(-time.Second), false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := medicine("m", tc.days, 100, 10)
			got := byID(Derive([]domain.Medicine{m}, nil, tc.at))
			a, ok := got["expiry-m"]
			require.Equal(t, tc.want, ok, "months until expiry %.4f", MonthsUntilExpiry(m, tc.at))
			if tc.want {
				assert.Equal(t, tc.severity, a.Severity)
			}
		})
	}
}

func TestStaleRequestAlert(t *testing.T) {
	requests := []domain.Request{
		{ID: "fresh", Status: domain.StatusPending, RequestedDate: now.Add(-12 * time.Hour)},
		{ID: "two", DoctorName: "Dr. Sarah Nakimuli", MedicineName: "Amoxicillin 250mg", Status: domain.StatusPending, RequestedDate: now.Add(-48 * time.Hour)},
		{ID: "four", Status: domain.StatusPending, RequestedDate: now.Add(-96 * time.Hour)},
		{ID: "old-approved", Status: domain.StatusApproved, RequestedDate: now.Add(-96 * time.Hour)},
	}

	got := byID(Derive(nil, requests, now))

	assert.NotContains(t, got, "request-fresh")
	require.Contains(t, got, "request-two")
	assert.Equal(t, domain.SeverityMedium, got["request-two"].Severity)
	assert.Equal(t, "Pending request from Dr. Sarah Nakimuli for Amoxicillin 250mg", got["request-two"].Message)
	assert.Equal(t, "two", got["request-two"].RequestID)
	assert.Equal(t, domain.SeverityHigh, got["request-four"].Severity)
	assert.NotContains(t, got, "request-old-approved")
}

func TestDeriveIsDeterministic(t *testing.T) {
	medicines := []domain.Medicine{medicine("1", 20, 0, 5), medicine("2", 500, 3, 5)}
	requests := []domain.Request{{ID: "r1", Status: domain.StatusPending, RequestedDate: now.Add(-72 * time.Hour)}}

	first := Derive(medicines, requests, now)
	second := Derive(medicines, requests, now)

	assert.Equal(t, first, second)
	ids := make([]string, len(first))
	for i, a := range first {
		ids[i] = a.ID
	}
	assert.Equal(t, []string{"expiry-1", "stock-1", "stock-2", "request-r1"}, ids)
}

func TestDeriveEmpty(t *testing.T) {
	got := Derive(nil, nil, now)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
