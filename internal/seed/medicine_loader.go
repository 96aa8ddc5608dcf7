package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"medstock/m/domain"
)

// Catalog CSV columns, in order. description is optional.
const (
	colName = iota
	colGenericName
	colCategory
	colManufacturer
	colBatchNumber
	colExpiryDate
	colQuantity
	colMinimumLevel
	colUnitPrice
	colLocation
	colDescription

	minColumns = colLocation + 1
)

// LoadMedicinesFile reads a catalog CSV from disk.
func LoadMedicinesFile(path string, logger *zap.Logger) ([]domain.Medicine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open medicine catalog %s: %w", path, err)
	}
	defer file.Close()
	return LoadMedicines(file, logger)
}

// LoadMedicines parses a catalog CSV with a header row. Malformed rows are
// logged and skipped; ids are assigned by row order starting at "1".
func LoadMedicines(r io.Reader, logger *zap.Logger) ([]domain.Medicine, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("read medicine header: %w", err)
	}

	var medicines []domain.Medicine
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("unable to read medicine row", zap.Int("line", line), zap.Error(err))
			continue
		}
		m, err := parseMedicine(record)
		if err != nil {
			logger.Warn("skipping medicine row", zap.Int("line", line), zap.Error(err))
			continue
		}
		m.ID = strconv.Itoa(len(medicines) + 1)
		medicines = append(medicines, m)
	}

	logger.Info("loaded medicine catalog", zap.Int("rows", len(medicines)))
	return medicines, nil
}

func parseMedicine(record []string) (domain.Medicine, error) {
	if len(record) < minColumns {
		return domain.Medicine{}, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(record))
	}
	field := func(i int) string { return strings.TrimSpace(record[i]) }

	name := field(colName)
	if name == "" {
		return domain.Medicine{}, fmt.Errorf("name is empty")
	}
	expiry, err := domain.ParseDate(field(colExpiryDate))
	if err != nil {
		return domain.Medicine{}, fmt.Errorf("expiry_date: %w", err)
	}
	qty, err := strconv.Atoi(field(colQuantity))
	if err != nil || qty < 0 {
		return domain.Medicine{}, fmt.Errorf("quantity_in_stock %q is not a non-negative integer", field(colQuantity))
	}
	minLevel, err := strconv.Atoi(field(colMinimumLevel))
	if err != nil || minLevel < 0 {
		return domain.Medicine{}, fmt.Errorf("minimum_stock_level %q is not a non-negative integer", field(colMinimumLevel))
	}
	price, err := decimal.NewFromString(field(colUnitPrice))
	if err != nil || price.IsNegative() {
		return domain.Medicine{}, fmt.Errorf("unit_price %q is not a non-negative number", field(colUnitPrice))
	}

	m := domain.Medicine{
		Name:              name,
		GenericName:       field(colGenericName),
		Category:          field(colCategory),
		Manufacturer:      field(colManufacturer),
		BatchNumber:       field(colBatchNumber),
		ExpiryDate:        expiry,
		QuantityInStock:   qty,
		MinimumStockLevel: minLevel,
		UnitPrice:         price,
		Location:          field(colLocation),
	}
	if len(record) > colDescription {
		m.Description = field(colDescription)
	}
	return m, nil
}
