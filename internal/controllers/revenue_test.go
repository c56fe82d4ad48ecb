package controllers

import (
	"testing"
	"time"

	"cyco-backend/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGroupMonthlyRevenue(t *testing.T) {
	payments := []models.Payment{
		{Amount: 10, Date: date(2024, time.January, 15)},
		{Amount: 5, Date: date(2024, time.January, 20)},
		{Amount: 7}, // no date: excluded
		{Amount: 20, Date: date(2024, time.March, 1)},
		{Amount: 3, Date: date(2023, time.December, 31)},
	}

	groups := GroupMonthlyRevenue(payments)

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3: %+v", len(groups), groups)
	}

	want := []models.MonthlyRevenue{
		{Year: 2024, Month: 3, TotalRevenue: 20},
		{Year: 2024, Month: 1, TotalRevenue: 15},
		{Year: 2023, Month: 12, TotalRevenue: 3},
	}
	for i, g := range groups {
		if g != want[i] {
			t.Errorf("group[%d] = %+v, want %+v", i, g, want[i])
		}
	}
}

func TestGroupMonthlyRevenueEmpty(t *testing.T) {
	if got := GroupMonthlyRevenue(nil); len(got) != 0 {
		t.Errorf("expected no groups, got %+v", got)
	}

	dateless := []models.Payment{{Amount: 7}, {Amount: 2}}
	if got := GroupMonthlyRevenue(dateless); len(got) != 0 {
		t.Errorf("dateless payments should produce no groups, got %+v", got)
	}
}
