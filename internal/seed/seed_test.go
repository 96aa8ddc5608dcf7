package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medstock/m/domain"
)

const catalogCSV = `name,generic_name,category,manufacturer,batch_number,expiry_date,quantity_in_stock,minimum_stock_level,unit_price,location,description
Paracetamol 500mg,Acetaminophen,Analgesic,Cipla Uganda,PAR2024001,2027-12-31,500,100,150,Shelf A1,Pain relief
Broken row,only,three
,Nameless,Analgesic,GSK,X1,2027-01-01,1,1,1,Shelf
Bad date,Generic,Analgesic,GSK,X2,31/12/2027,1,1,1,Shelf
Negative level,Generic,Analgesic,GSK,X3,2027-01-01,1,-4,1,Shelf
Negative stock,Generic,Analgesic,GSK,X4,2027-01-01,-25,10,1,Shelf
Metformin 500mg,Metformin,Antidiabetic,Sun Pharma,MET2025001,2027-06-30,300,80,95.50,Shelf D1
`

func TestLoadMedicines(t *testing.T) {
	medicines, err := LoadMedicines(strings.NewReader(catalogCSV), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, medicines, 2)

	first := medicines[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Paracetamol 500mg", first.Name)
	assert.Equal(t, time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC), first.ExpiryDate)
	assert.Equal(t, 500, first.QuantityInStock)
	assert.Equal(t, 100, first.MinimumStockLevel)
	assert.True(t, decimal.NewFromInt(150).Equal(first.UnitPrice))
	assert.Equal(t, "Pain relief", first.Description)

	second := medicines[1]
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, "Metformin 500mg", second.Name)
	assert.Equal(t, "95.5", second.UnitPrice.String())
	assert.Empty(t, second.Description)
}

func TestLoadMedicinesEmptyInput(t *testing.T) {
	_, err := LoadMedicines(strings.NewReader(""), zap.NewNop())
	assert.Error(t, err)
}

func TestLoadMedicinesFileMissing(t *testing.T) {
	_, err := LoadMedicinesFile("does-not-exist.csv", zap.NewNop())
	assert.Error(t, err)
}

func TestSampleData(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	users := Users()
	require.Len(t, users, 4)
	roles := map[domain.Role]int{}
	for _, u := range users {
		roles[u.Role]++
	}
	assert.Equal(t, map[domain.Role]int{domain.RoleDoctor: 2, domain.RolePharmacist: 1, domain.RoleAdmin: 1}, roles)

	medicines := Medicines(now)
	ids := map[string]bool{}
	statuses := map[domain.ExpiryStatus]bool{}
	for _, m := range medicines {
		ids[m.ID] = true
		statuses[m.ExpiryStatus(now)] = true
	}
	for _, st := range domain.ExpiryStatuses {
		assert.True(t, statuses[st], "sample catalog covers %s", st)
	}

	for _, r := range Requests(now) {
		assert.True(t, ids[r.MedicineID], "request %s references a sample medicine", r.ID)
	}
}

func TestRequestsForLoadedCatalog(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	assert.Len(t, RequestsFor(Medicines(now), now), len(Requests(now)))

	medicines, err := LoadMedicines(strings.NewReader(catalogCSV), zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, "Paracetamol 500mg", medicines[0].Name)

	// Row 1 is Paracetamol, matching r-2; row 2 is Metformin, not Amoxicillin.
	got := RequestsFor(medicines, now)
	require.Len(t, got, 1)
	assert.Equal(t, "r-2", got[0].ID)

	metformin := []domain.Medicine{{ID: "1", Name: "Metformin 500mg"}}
	assert.Empty(t, RequestsFor(metformin, now))
}
