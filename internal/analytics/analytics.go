// Package analytics aggregates requests and usage over a lookback window.
// Everything here is read-only and computed from copies handed in by the caller.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"medstock/m/domain"
)

const (
	topRequestedLimit = 10
	trendMonths       = 6
)

// Windows are the lookback periods offered to users, in days.
var Windows = []int{7, 30, 90, 365}

// Count is one bar of a ranked chart.
type Count struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type StatusShare struct {
	Status  domain.RequestStatus `json:"status"`
	Count   int                  `json:"count"`
	Percent float64              `json:"percent"`
}

// MonthTrend holds one calendar month. TrendPercent compares request counts
// with the previous month and is 0 when there is nothing to compare against.
type MonthTrend struct {
	Month        string    `json:"month"`
	Start        time.Time `json:"start"`
	Requests     int       `json:"requests"`
	Usage        int       `json:"usage"`
	TrendPercent float64   `json:"trend_percent"`
}

type Report struct {
	WindowDays         int           `json:"window_days"`
	From               time.Time     `json:"from"`
	To                 time.Time     `json:"to"`
	TotalRequests      int           `json:"total_requests"`
	TotalUsage         int           `json:"total_usage"`
	TopRequested       []Count       `json:"top_requested"`
	DepartmentUsage    []Count       `json:"department_usage"`
	CategoryUsage      []Count       `json:"category_usage"`
	StatusDistribution []StatusShare `json:"status_distribution"`
	Monthly            []MonthTrend  `json:"monthly"`
}

// Compute builds the analytics report for the trailing windowDays ending at now.
// The status distribution and monthly trend ignore the window.
func Compute(medicines []domain.Medicine, requests []domain.Request, usage []domain.UsageRecord, windowDays int, now time.Time) (Report, error) {
	if windowDays <= 0 {
		return Report{}, fmt.Errorf("%w: window must be positive, got %d days", domain.ErrValidation, windowDays)
	}
	from := now.Add(-time.Duration(windowDays) * 24 * time.Hour)

	report := Report{
		WindowDays: windowDays,
		From:       from,
		To:         now,
	}

	requested := make(map[string]int)
	for _, r := range requests {
		if r.RequestedDate.Before(from) {
			continue
		}
		report.TotalRequests++
		requested[r.MedicineName] += r.QuantityRequested
	}

	categoryOf := make(map[string]string, len(medicines))
	for _, m := range medicines {
		categoryOf[m.ID] = m.Category
	}
	byDepartment := make(map[string]int)
	byCategory := make(map[string]int)
	for _, u := range usage {
		if u.Date.Before(from) {
			continue
		}
		report.TotalUsage += u.QuantityUsed
		byDepartment[u.Department] += u.QuantityUsed
		if category, ok := categoryOf[u.MedicineID]; ok {
			byCategory[category] += u.QuantityUsed
		}
	}

	report.TopRequested = ranked(requested, topRequestedLimit)
	report.DepartmentUsage = ranked(byDepartment, 0)
	report.CategoryUsage = ranked(byCategory, 0)
	report.StatusDistribution = statusDistribution(requests)
	report.Monthly = monthly(requests, usage, now)
	return report, nil
}

// ranked sorts totals descending, breaking ties by name. limit <= 0 keeps all.
func ranked(totals map[string]int, limit int) []Count {
	out := make([]Count, 0, len(totals))
	for name, qty := range totals {
		out = append(out, Count{Name: name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func statusDistribution(requests []domain.Request) []StatusShare {
	counts := make(map[domain.RequestStatus]int, len(domain.RequestStatuses))
	for _, r := range requests {
		counts[r.Status]++
	}
	out := make([]StatusShare, 0, len(domain.RequestStatuses))
	for _, st := range domain.RequestStatuses {
		share := StatusShare{Status: st, Count: counts[st]}
		if len(requests) > 0 {
			share.Percent = float64(share.Count) / float64(len(requests)) * 100
		}
		out = append(out, share)
	}
	return out
}

// monthly covers the current month and the five before it, oldest first.
// Months are half-open: [first day, first day of next month).
func monthly(requests []domain.Request, usage []domain.UsageRecord, now time.Time) []MonthTrend {
	out := make([]MonthTrend, 0, trendMonths)
	y, m, _ := now.Date()
	for i := trendMonths - 1; i >= 0; i-- {
		start := time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0)

		mt := MonthTrend{Month: start.Format("Jan"), Start: start}
		for _, r := range requests {
			if within(r.RequestedDate, start, end) {
				mt.Requests++
			}
		}
		for _, u := range usage {
			if within(u.Date, start, end) {
				mt.Usage += u.QuantityUsed
			}
		}
		if n := len(out); n > 0 && out[n-1].Requests > 0 {
			prev := out[n-1].Requests
			mt.TrendPercent = float64(mt.Requests-prev) / float64(prev) * 100
		}
		out = append(out, mt)
	}
	return out
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
