package controllers

import (
	"sort"

	"cyco-backend/internal/models"
)

// GroupMonthlyRevenue sums payment amounts by the (year, month) of their date.
// Payments without a date are skipped, not treated as errors. Groups come back
// most recent first.
func GroupMonthlyRevenue(payments []models.Payment) []models.MonthlyRevenue {
	type key struct {
		year  int
		month int
	}

	totals := make(map[key]float64)
	for _, p := range payments {
		if p.Date.IsZero() {
			continue
		}
		totals[key{p.Date.Year(), int(p.Date.Month())}] += p.Amount
	}

	groups := make([]models.MonthlyRevenue, 0, len(totals))
	for k, total := range totals {
		groups = append(groups, models.MonthlyRevenue{
			Year:         k.year,
			Month:        k.month,
			TotalRevenue: total,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Year != groups[j].Year {
			return groups[i].Year > groups[j].Year
		}
		return groups[i].Month > groups[j].Month
	})
	return groups
}
