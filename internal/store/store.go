// Package store holds the pharmacy's in-memory state and the only operations
// allowed to change it. Every operation runs under a single mutex, and every
// read returns a copy so callers can never mutate the collections directly.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"medstock/m/domain"
	"medstock/m/internal/alerts"
)

// SystemActor is recorded as the approver when no acting user is supplied.
const SystemActor = "System"

// Config seeds a Store.
type Config struct {
	Users     []domain.User
	Medicines []domain.Medicine
	Requests  []domain.Request
	Usage     []domain.UsageRecord

	// Password is the single credential shared by every roster user.
	Password   string
	BcryptCost int

	// Now defaults to time.Now.
	Now func() time.Time
}

// Store is the inventory domain store.
type Store struct {
	mu sync.Mutex

	users     []domain.User
	medicines []domain.Medicine
	requests  []domain.Request
	usage     []domain.UsageRecord
	alerts    []domain.Alert

	current      *domain.User
	passwordHash []byte

	now   func() time.Time
	newID func() string
}

// New builds a store from cfg and computes the initial alert set.
func New(cfg Config) (*Store, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	if err := checkSeed(cfg.Medicines, cfg.Requests); err != nil {
		return nil, err
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Store{
		users:        append([]domain.User(nil), cfg.Users...),
		medicines:    append([]domain.Medicine(nil), cfg.Medicines...),
		requests:     append([]domain.Request(nil), cfg.Requests...),
		usage:        append([]domain.UsageRecord(nil), cfg.Usage...),
		passwordHash: hash,
		now:          now,
		newID:        uuid.NewString,
	}
	s.recompute()
	return s, nil
}

// checkSeed rejects initial data that breaks the catalog invariants: stock
// levels must be non-negative and every request must name a catalog medicine.
func checkSeed(medicines []domain.Medicine, requests []domain.Request) error {
	ids := make(map[string]bool, len(medicines))
	for _, m := range medicines {
		if m.QuantityInStock < 0 || m.MinimumStockLevel < 0 {
			return fmt.Errorf("%w: medicine %s has negative stock levels", domain.ErrValidation, m.ID)
		}
		ids[m.ID] = true
	}
	for _, r := range requests {
		if !ids[r.MedicineID] {
			return fmt.Errorf("%w: request %s references unknown medicine %s", domain.ErrValidation, r.ID, r.MedicineID)
		}
	}
	return nil
}

// recompute replaces the alert set. Callers must hold mu.
func (s *Store) recompute() {
	s.alerts = alerts.Derive(s.medicines, s.requests, s.now())
}

func (s *Store) authorize(actor *domain.User, action domain.Action) error {
	if actor == nil {
		return nil
	}
	if !actor.Role.Can(action) {
		return fmt.Errorf("%w: %s may not %s", domain.ErrForbidden, actor.Role, action)
	}
	return nil
}

func (s *Store) medicineIndex(id string) int {
	for i := range s.medicines {
		if s.medicines[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) requestIndex(id string) int {
	for i := range s.requests {
		if s.requests[i].ID == id {
			return i
		}
	}
	return -1
}

// Users returns the fixed roster.
func (s *Store) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.User{}, s.users...)
}

// User looks up a roster entry by id.
func (s *Store) User(id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
}

// Medicines returns the catalog in insertion order.
func (s *Store) Medicines() []domain.Medicine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Medicine{}, s.medicines...)
}

// Medicine returns one catalog entry.
func (s *Store) Medicine(id string) (domain.Medicine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.medicineIndex(id)
	if i < 0 {
		return domain.Medicine{}, fmt.Errorf("%w: medicine %s", domain.ErrNotFound, id)
	}
	return s.medicines[i], nil
}

// Requests returns every request in submission order.
func (s *Store) Requests() []domain.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Request{}, s.requests...)
}

// Request returns one request.
func (s *Store) Request(id string) (domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.requestIndex(id)
	if i < 0 {
		return domain.Request{}, fmt.Errorf("%w: request %s", domain.ErrNotFound, id)
	}
	return s.requests[i], nil
}

// UsageRecords returns the usage log in recording order.
func (s *Store) UsageRecords() []domain.UsageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.UsageRecord{}, s.usage...)
}

// Alerts returns the alert set as of the last recomputation, minus dismissals.
func (s *Store) Alerts() []domain.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Alert{}, s.alerts...)
}

// Snapshot is a consistent copy of every collection taken under one lock.
type Snapshot struct {
	Medicines []domain.Medicine
	Requests  []domain.Request
	Usage     []domain.UsageRecord
	Alerts    []domain.Alert
	Now       time.Time
}

// Snapshot copies all collections at once, for views that combine them.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Medicines: append([]domain.Medicine{}, s.medicines...),
		Requests:  append([]domain.Request{}, s.requests...),
		Usage:     append([]domain.UsageRecord{}, s.usage...),
		Alerts:    append([]domain.Alert{}, s.alerts...),
		Now:       s.now(),
	}
}
