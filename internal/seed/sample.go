// Package seed provides the fixed staff roster and the sample pharmacy data
// the store starts with.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"medstock/m/domain"
)

// Users is the fixed roster. Everyone signs in with the shared credential.
func Users() []domain.User {
	return []domain.User{
		{ID: "1", Name: "Dr. Sarah Nakimuli", Email: "sarah.nakimuli@mpigi.ug", Role: domain.RoleDoctor, Department: "Pediatrics"},
		{ID: "2", Name: "Dr. James Musoke", Email: "james.musoke@mpigi.ug", Role: domain.RoleDoctor, Department: "Internal Medicine"},
		{ID: "3", Name: "Florence Namukasa", Email: "florence.namukasa@mpigi.ug", Role: domain.RolePharmacist, Department: "Pharmacy"},
		{ID: "4", Name: "Administrator", Email: "admin@mpigi.ug", Role: domain.RoleAdmin, Department: "Administration"},
	}
}

// Medicines is the sample catalog. Expiry dates are offsets from now so a fresh
// start always shows every expiry bucket.
func Medicines(now time.Time) []domain.Medicine {
	today := domain.CalendarDate(now)
	return []domain.Medicine{
		{
			ID: "1", Name: "Paracetamol 500mg", GenericName: "Acetaminophen", Category: "Analgesic",
			Manufacturer: "Cipla Uganda", BatchNumber: "PAR2024001", ExpiryDate: today.AddDate(0, 0, 440),
			QuantityInStock: 500, MinimumStockLevel: 100, UnitPrice: decimal.NewFromInt(150),
			Location: "Shelf A1", Description: "Pain relief and fever reduction",
		},
		{
			ID: "2", Name: "Amoxicillin 250mg", GenericName: "Amoxicillin", Category: "Antibiotic",
			Manufacturer: "Quality Chemicals", BatchNumber: "AMX2024002", ExpiryDate: today.AddDate(0, 0, 75),
			QuantityInStock: 75, MinimumStockLevel: 50, UnitPrice: decimal.NewFromInt(800),
			Location: "Shelf B2", Description: "Broad spectrum antibiotic",
		},
		{
			ID: "3", Name: "Insulin Glargine", GenericName: "Insulin Glargine", Category: "Antidiabetic",
			Manufacturer: "Novo Nordisk", BatchNumber: "INS2024003", ExpiryDate: today.AddDate(0, 0, 20),
			QuantityInStock: 25, MinimumStockLevel: 20, UnitPrice: decimal.NewFromInt(15000),
			Location: "Refrigerator R1", Description: "Long-acting insulin",
		},
		{
			ID: "4", Name: "Panadol Extra", GenericName: "Paracetamol + Caffeine", Category: "Analgesic",
			Manufacturer: "GSK", BatchNumber: "PAN2023015", ExpiryDate: today.AddDate(0, 0, -10),
			QuantityInStock: 200, MinimumStockLevel: 75, UnitPrice: decimal.NewFromInt(250),
			Location: "Shelf A2", Description: "Enhanced pain relief",
		},
		{
			ID: "5", Name: "Ceftriaxone 1g", GenericName: "Ceftriaxone", Category: "Antibiotic",
			Manufacturer: "Cipla Uganda", BatchNumber: "CEF2024007", ExpiryDate: today.AddDate(0, 0, 150),
			QuantityInStock: 0, MinimumStockLevel: 50, UnitPrice: decimal.NewFromInt(3500),
			Location: "Shelf B4", Description: "Injectable cephalosporin",
		},
		{
			ID: "6", Name: "ORS Sachets", GenericName: "Oral Rehydration Salts", Category: "Electrolyte",
			Manufacturer: "Abacus Pharma", BatchNumber: "ORS2024011", ExpiryDate: today.AddDate(0, 0, 300),
			QuantityInStock: 1200, MinimumStockLevel: 300, UnitPrice: decimal.NewFromInt(500),
			Location: "Store Room S1",
		},
	}
}

// Requests are two illustrative entries against the sample catalog: one
// pending for two days and one already approved.
func Requests(now time.Time) []domain.Request {
	approvedAt := now.Add(-20 * time.Hour)
	return []domain.Request{
		{
			ID: "r-1", DoctorID: "1", DoctorName: "Dr. Sarah Nakimuli", Department: "Pediatrics",
			MedicineID: "2", MedicineName: "Amoxicillin 250mg", QuantityRequested: 30,
			Reason: "Pediatric ward respiratory infections", Priority: domain.PriorityHigh,
			Status: domain.StatusPending, RequestedDate: now.Add(-48 * time.Hour),
		},
		{
			ID: "r-2", DoctorID: "2", DoctorName: "Dr. James Musoke", Department: "Internal Medicine",
			MedicineID: "1", MedicineName: "Paracetamol 500mg", QuantityRequested: 50,
			Reason: "Post-operative pain management", Priority: domain.PriorityMedium,
			Status: domain.StatusApproved, RequestedDate: now.Add(-26 * time.Hour),
			ApprovedDate: &approvedAt, ApprovedBy: "Florence Namukasa",
		},
	}
}

// RequestsFor returns the sample requests whose medicine is present in catalog
// under the same id and name. A catalog loaded from CSV numbers its rows
// independently, so requests that would point at a different drug are dropped.
func RequestsFor(catalog []domain.Medicine, now time.Time) []domain.Request {
	names := make(map[string]string, len(catalog))
	for _, m := range catalog {
		names[m.ID] = m.Name
	}
	out := make([]domain.Request, 0)
	for _, r := range Requests(now) {
		if name, ok := names[r.MedicineID]; ok && name == r.MedicineName {
			out = append(out, r)
		}
	}
	return out
}
