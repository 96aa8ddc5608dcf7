package analytics

import (
	"encoding/csv"
	"io"
	"strconv"
)

var exportHeader = []string{"section", "label", "count", "quantity", "percent"}

// WriteCSV flattens a report into one CSV table, one section after another.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		exportHeader,
		{"summary", "window_days", strconv.Itoa(r.WindowDays), "", ""},
		{"summary", "total_requests", strconv.Itoa(r.TotalRequests), "", ""},
		{"summary", "total_usage", "", strconv.Itoa(r.TotalUsage), ""},
	}
	for _, c := range r.TopRequested {
		rows = append(rows, []string{"top_requested", c.Name, "", strconv.Itoa(c.Quantity), ""})
	}
	for _, c := range r.DepartmentUsage {
		rows = append(rows, []string{"department_usage", c.Name, "", strconv.Itoa(c.Quantity), ""})
	}
	for _, c := range r.CategoryUsage {
		rows = append(rows, []string{"category_usage", c.Name, "", strconv.Itoa(c.Quantity), ""})
	}
	for _, s := range r.StatusDistribution {
		rows = append(rows, []string{"status", string(s.Status), strconv.Itoa(s.Count), "", formatPercent(s.Percent)})
	}
	for _, m := range r.Monthly {
		rows = append(rows, []string{"monthly", m.Start.Format("2006-01"), strconv.Itoa(m.Requests), strconv.Itoa(m.Usage), formatPercent(m.TrendPercent)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
