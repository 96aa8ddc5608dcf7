package store

import (
	"fmt"

	"medstock/m/domain"
)

// SubmitRequest records a new pending request against an existing medicine.
func (s *Store) SubmitRequest(actor *domain.User, in domain.NewRequest) (domain.Request, error) {
	if err := s.authorize(actor, domain.ActionSubmitRequest); err != nil {
		return domain.Request{}, err
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if err := check(in); err != nil {
		return domain.Request{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.medicineIndex(in.MedicineID)
	if i < 0 {
		return domain.Request{}, fmt.Errorf("%w: medicine %s", domain.ErrNotFound, in.MedicineID)
	}
	name := in.MedicineName
	if name == "" {
		name = s.medicines[i].Name
	}

	r := domain.Request{
		ID:                s.newID(),
		DoctorID:          in.DoctorID,
		DoctorName:        in.DoctorName,
		Department:        in.Department,
		MedicineID:        in.MedicineID,
		MedicineName:      name,
		QuantityRequested: in.QuantityRequested,
		Reason:            in.Reason,
		Priority:          in.Priority,
		Status:            domain.StatusPending,
		RequestedDate:     s.now(),
	}
	s.requests = append(s.requests, r)
	s.recompute()
	return r, nil
}

// ApproveRequest moves a pending request to approved and stamps the approver.
func (s *Store) ApproveRequest(actor *domain.User, id, notes string) error {
	if err := s.authorize(actor, domain.ActionReviewRequest); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.transition(id, domain.StatusApproved)
	if err != nil {
		return err
	}
	at := s.now()
	r.Status = domain.StatusApproved
	r.ApprovedDate = &at
	r.ApprovedBy = SystemActor
	if actor != nil {
		r.ApprovedBy = actor.Name
	}
	r.Notes = notes
	s.recompute()
	return nil
}

// RejectRequest closes a pending request with the reviewer's notes.
func (s *Store) RejectRequest(actor *domain.User, id, notes string) error {
	if err := s.authorize(actor, domain.ActionReviewRequest); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.transition(id, domain.StatusRejected)
	if err != nil {
		return err
	}
	r.Status = domain.StatusRejected
	r.Notes = notes
	s.recompute()
	return nil
}

// DispenseRequest fulfils an approved request: the medicine's stock drops by the
// requested quantity and one usage record is appended. Stock is not checked
// first and may go negative.
func (s *Store) DispenseRequest(actor *domain.User, id string) error {
	if err := s.authorize(actor, domain.ActionDispense); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.transition(id, domain.StatusDispensed)
	if err != nil {
		return err
	}
	mi := s.medicineIndex(r.MedicineID)
	if mi < 0 {
		return fmt.Errorf("%w: medicine %s for request %s", domain.ErrNotFound, r.MedicineID, r.ID)
	}

	at := s.now()
	r.Status = domain.StatusDispensed
	r.DispensedDate = &at
	s.medicines[mi].QuantityInStock -= r.QuantityRequested
	s.usage = append(s.usage, domain.UsageRecord{
		ID:           s.newID(),
		MedicineID:   r.MedicineID,
		MedicineName: r.MedicineName,
		QuantityUsed: r.QuantityRequested,
		UsedBy:       r.DoctorName,
		Department:   r.Department,
		Date:         at,
		Purpose:      r.Reason,
	})
	s.recompute()
	return nil
}

// transition finds the request and checks that it may move to the target status.
// Callers must hold mu.
func (s *Store) transition(id string, to domain.RequestStatus) (*domain.Request, error) {
	i := s.requestIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: request %s", domain.ErrNotFound, id)
	}
	r := &s.requests[i]
	if !domain.CanTransition(r.Status, to) {
		return nil, fmt.Errorf("%w: request %s is %s, cannot become %s", domain.ErrInvalidTransition, id, r.Status, to)
	}
	return r, nil
}
