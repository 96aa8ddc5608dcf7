package store

import (
	"medstock/m/domain"
)

// AddMedicine appends a new catalog entry with a fresh id.
func (s *Store) AddMedicine(actor *domain.User, in domain.NewMedicine) (domain.Medicine, error) {
	if err := s.authorize(actor, domain.ActionManageStock); err != nil {
		return domain.Medicine{}, err
	}
	if err := check(in); err != nil {
		return domain.Medicine{}, err
	}
	if err := checkPrice(&in.UnitPrice); err != nil {
		return domain.Medicine{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := domain.Medicine{
		ID:                s.newID(),
		Name:              in.Name,
		GenericName:       in.GenericName,
		Category:          in.Category,
		Manufacturer:      in.Manufacturer,
		BatchNumber:       in.BatchNumber,
		ExpiryDate:        domain.CalendarDate(in.ExpiryDate),
		QuantityInStock:   in.QuantityInStock,
		MinimumStockLevel: in.MinimumStockLevel,
		UnitPrice:         in.UnitPrice,
		Location:          in.Location,
		Description:       in.Description,
	}
	s.medicines = append(s.medicines, m)
	s.recompute()
	return m, nil
}

// UpdateMedicine merges the set fields of upd into the medicine with this id.
// An unknown id is a no-op and returns nil; no other record is touched.
func (s *Store) UpdateMedicine(actor *domain.User, id string, upd domain.MedicineUpdate) error {
	if err := s.authorize(actor, domain.ActionManageStock); err != nil {
		return err
	}
	if err := check(upd); err != nil {
		return err
	}
	if err := checkPrice(upd.UnitPrice); err != nil {
		return err
	}
	if upd.ExpiryDate != nil {
		d := domain.CalendarDate(*upd.ExpiryDate)
		upd.ExpiryDate = &d
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.medicineIndex(id)
	if i < 0 {
		return nil
	}
	s.medicines[i].Apply(upd)
	s.recompute()
	return nil
}
