package store

import (
	"strings"

	"medstock/m/domain"
)

// SearchMedicines matches query against name and generic name, ignoring case.
// An empty category matches every category.
func (s *Store) SearchMedicines(query, category string) []domain.Medicine {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Medicine, 0, len(s.medicines))
	for _, m := range s.medicines {
		if category != "" && m.Category != category {
			continue
		}
		if !matchesAny(q, m.Name, m.GenericName) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Categories lists distinct categories in catalog order.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, m := range s.medicines {
		if seen[m.Category] {
			continue
		}
		seen[m.Category] = true
		out = append(out, m.Category)
	}
	return out
}

// ExpiryEntry is one row of the expiry monitor.
type ExpiryEntry struct {
	Medicine domain.Medicine     `json:"medicine"`
	Status   domain.ExpiryStatus `json:"status"`
	Days     int                 `json:"days"`
	Text     string              `json:"text"`
}

// ExpiryReport is the expiry monitor view. Counts cover the whole catalog
// regardless of the filters applied to Entries.
type ExpiryReport struct {
	Entries []ExpiryEntry               `json:"entries"`
	Counts  map[domain.ExpiryStatus]int `json:"counts"`
}

// ExpiryReport classifies every medicine by days to expiry. An empty status
// keeps all buckets.
func (s *Store) ExpiryReport(status domain.ExpiryStatus, query string) ExpiryReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	q := strings.ToLower(strings.TrimSpace(query))
	report := ExpiryReport{
		Entries: make([]ExpiryEntry, 0),
		Counts:  make(map[domain.ExpiryStatus]int, len(domain.ExpiryStatuses)),
	}
	for _, st := range domain.ExpiryStatuses {
		report.Counts[st] = 0
	}

	for _, m := range s.medicines {
		days := m.DaysUntilExpiry(now)
		st := domain.ClassifyExpiry(days)
		report.Counts[st]++

		if status != "" && st != status {
			continue
		}
		if !matchesAny(q, m.Name, m.GenericName) {
			continue
		}
		report.Entries = append(report.Entries, ExpiryEntry{
			Medicine: m,
			Status:   st,
			Days:     absInt(days),
			Text:     domain.ExpiryText(days),
		})
	}
	return report
}

// FilterRequests returns the requests a viewer may see. Doctors only see their
// own; pharmacists and admins see all. query matches medicine or doctor name.
func (s *Store) FilterRequests(viewer domain.User, query string, status domain.RequestStatus) []domain.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Request, 0, len(s.requests))
	for _, r := range s.requests {
		if viewer.Role == domain.RoleDoctor && r.DoctorID != viewer.ID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		if !matchesAny(q, r.MedicineName, r.DoctorName) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesAny(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
