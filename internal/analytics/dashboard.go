package analytics

import (
	"github.com/shopspring/decimal"

	"medstock/m/domain"
)

const recentRequestsLimit = 5

type DashboardStats struct {
	TotalMedicines   int              `json:"total_medicines"`
	TotalRequests    int              `json:"total_requests"`
	PendingRequests  int              `json:"pending_requests"`
	ApprovedRequests int              `json:"approved_requests"`
	LowStockItems    int              `json:"low_stock_items"`
	ExpiringItems    int              `json:"expiring_items"`
	TotalUsage       int              `json:"total_usage"`
	InventoryValue   decimal.Decimal  `json:"inventory_value"`
	RecentRequests   []domain.Request `json:"recent_requests"`
}

// Dashboard summarises the current state. ExpiringItems counts expiry alerts,
// so a dismissed alert drops out until the next recomputation.
func Dashboard(medicines []domain.Medicine, requests []domain.Request, usage []domain.UsageRecord, alerts []domain.Alert) DashboardStats {
	stats := DashboardStats{
		TotalMedicines: len(medicines),
		TotalRequests:  len(requests),
		InventoryValue: decimal.Zero,
		RecentRequests: make([]domain.Request, 0, recentRequestsLimit),
	}

	for _, m := range medicines {
		if m.StockStatus() != domain.InStock {
			stats.LowStockItems++
		}
		if m.QuantityInStock > 0 {
			stats.InventoryValue = stats.InventoryValue.Add(m.UnitPrice.Mul(decimal.NewFromInt(int64(m.QuantityInStock))))
		}
	}

	for _, r := range requests {
		switch r.Status {
		case domain.StatusPending:
			stats.PendingRequests++
		case domain.StatusApproved:
			stats.ApprovedRequests++
		}
	}

	for _, a := range alerts {
		if a.Type == domain.AlertExpiry {
			stats.ExpiringItems++
		}
	}

	for _, u := range usage {
		stats.TotalUsage += u.QuantityUsed
	}

	for i := len(requests) - 1; i >= 0 && len(stats.RecentRequests) < recentRequestsLimit; i-- {
		stats.RecentRequests = append(stats.RecentRequests, requests[i])
	}
	return stats
}
