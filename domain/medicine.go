package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date form used for expiry dates on the wire.
const DateLayout = "2006-01-02"

type Medicine struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	GenericName       string          `json:"generic_name"`
	Category          string          `json:"category"`
	Manufacturer      string          `json:"manufacturer"`
	BatchNumber       string          `json:"batch_number"`
	ExpiryDate        time.Time       `json:"expiry_date"`
	QuantityInStock   int             `json:"quantity_in_stock"`
	MinimumStockLevel int             `json:"minimum_stock_level"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Location          string          `json:"location"`
	Description       string          `json:"description,omitempty"`
}

// NewMedicine carries the fields of a catalog entry before it is assigned an id.
type NewMedicine struct {
	Name              string          `json:"name" validate:"required"`
	GenericName       string          `json:"generic_name" validate:"required"`
	Category          string          `json:"category" validate:"required"`
	Manufacturer      string          `json:"manufacturer" validate:"required"`
	BatchNumber       string          `json:"batch_number" validate:"required"`
	ExpiryDate        time.Time       `json:"expiry_date" validate:"required"`
	QuantityInStock   int             `json:"quantity_in_stock" validate:"min=0"`
	MinimumStockLevel int             `json:"minimum_stock_level" validate:"min=0"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Location          string          `json:"location" validate:"required"`
	Description       string          `json:"description,omitempty"`
}

// MedicineUpdate is a partial edit; nil fields are left untouched.
type MedicineUpdate struct {
	Name              *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	GenericName       *string          `json:"generic_name,omitempty" validate:"omitempty,min=1"`
	Category          *string          `json:"category,omitempty" validate:"omitempty,min=1"`
	Manufacturer      *string          `json:"manufacturer,omitempty"`
	BatchNumber       *string          `json:"batch_number,omitempty"`
	ExpiryDate        *time.Time       `json:"expiry_date,omitempty"`
	QuantityInStock   *int             `json:"quantity_in_stock,omitempty" validate:"omitempty,min=0"`
	MinimumStockLevel *int             `json:"minimum_stock_level,omitempty" validate:"omitempty,min=0"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	Location          *string          `json:"location,omitempty"`
	Description       *string          `json:"description,omitempty"`
}

// Apply merges the non-nil fields of u into m.
func (m *Medicine) Apply(u MedicineUpdate) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.GenericName != nil {
		m.GenericName = *u.GenericName
	}
	if u.Category != nil {
		m.Category = *u.Category
	}
	if u.Manufacturer != nil {
		m.Manufacturer = *u.Manufacturer
	}
	if u.BatchNumber != nil {
		m.BatchNumber = *u.BatchNumber
	}
	if u.ExpiryDate != nil {
		m.ExpiryDate = *u.ExpiryDate
	}
	if u.QuantityInStock != nil {
		m.QuantityInStock = *u.QuantityInStock
	}
	if u.MinimumStockLevel != nil {
		m.MinimumStockLevel = *u.MinimumStockLevel
	}
	if u.UnitPrice != nil {
		m.UnitPrice = *u.UnitPrice
	}
	if u.Location != nil {
		m.Location = *u.Location
	}
	if u.Description != nil {
		m.Description = *u.Description
	}
}

type StockStatus string

const (
	OutOfStock StockStatus = "out_of_stock"
	LowStock   StockStatus = "low_stock"
	InStock    StockStatus = "in_stock"
)

// StockStatus classifies the current quantity against the reorder level.
func (m Medicine) StockStatus() StockStatus {
	switch {
	case m.QuantityInStock == 0:
		return OutOfStock
	case m.QuantityInStock <= m.MinimumStockLevel:
		return LowStock
	default:
		return InStock
	}
}

type ExpiryStatus string

const (
	Expired  ExpiryStatus = "expired"
	Critical ExpiryStatus = "critical"
	Warning  ExpiryStatus = "warning"
	Caution  ExpiryStatus = "caution"
	Good     ExpiryStatus = "good"
)

// ExpiryStatuses lists the buckets from most to least urgent.
var ExpiryStatuses = []ExpiryStatus{Expired, Critical, Warning, Caution, Good}

// ClassifyExpiry buckets a day count. Boundary days belong to the nearer bucket.
func ClassifyExpiry(days int) ExpiryStatus {
	switch {
	case days < 0:
		return Expired
	case days <= 30:
		return Critical
	case days <= 90:
		return Warning
	case days <= 180:
		return Caution
	default:
		return Good
	}
}

// DaysUntilExpiry counts whole calendar days from now's date to the expiry date.
func (m Medicine) DaysUntilExpiry(now time.Time) int {
	return DaysBetween(now, m.ExpiryDate)
}

// ExpiryStatus classifies the medicine relative to now's calendar date.
func (m Medicine) ExpiryStatus(now time.Time) ExpiryStatus {
	return ClassifyExpiry(m.DaysUntilExpiry(now))
}

// ExpiryText renders a day count the way the expiry monitor shows it.
func ExpiryText(days int) string {
	if days < 0 {
		return fmt.Sprintf("Expired %d days ago", -days)
	}
	return fmt.Sprintf("Expires in %d days", days)
}

// DaysBetween counts calendar days from a's date to b's date, ignoring time of day.
func DaysBetween(a, b time.Time) int {
	return int(CalendarDate(b).Sub(CalendarDate(a)).Hours() / 24)
}

// CalendarDate drops the clock and zone, keeping the local year, month and day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
