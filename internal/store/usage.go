package store

import (
	"fmt"

	"medstock/m/domain"
)

// RecordUsage appends a usage entry directly, outside the dispense flow.
// Stock levels are not adjusted.
func (s *Store) RecordUsage(actor *domain.User, in domain.NewUsage) (domain.UsageRecord, error) {
	if err := s.authorize(actor, domain.ActionRecordUsage); err != nil {
		return domain.UsageRecord{}, err
	}
	if err := check(in); err != nil {
		return domain.UsageRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := domain.UsageRecord{
		ID:           s.newID(),
		MedicineID:   in.MedicineID,
		MedicineName: in.MedicineName,
		QuantityUsed: in.QuantityUsed,
		UsedBy:       in.UsedBy,
		Department:   in.Department,
		Date:         s.now(),
		Purpose:      in.Purpose,
	}
	s.usage = append(s.usage, rec)
	return rec, nil
}

// DismissAlert hides one alert until the next recomputation. If its trigger
// still holds then, it comes back.
func (s *Store) DismissAlert(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.alerts {
		if a.ID == id {
			s.alerts = append(s.alerts[:i:i], s.alerts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: alert %s", domain.ErrNotFound, id)
}
