package model

import (
	"testing"
	"time"
)

func TestClassifyDeadline_NoDueDate(t *testing.T) {
	nows := []time.Time{
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, now := range nows {
		d := ClassifyDeadline(now, nil)
		if d.Kind != DeadlineNone {
			t.Fatalf("expected DeadlineNone regardless of now=%v, got %v", now, d.Kind)
		}
	}
}

func TestClassifyDeadline_Buckets(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		due      time.Time
		kind     DeadlineKind
		daysLeft int
	}{
		{"overdue two days", now.Add(-49 * time.Hour), DeadlineOverdue, -2},
		{"overdue just past", now.Add(-25 * time.Hour), DeadlineOverdue, -1},
		{"due earlier today", now.Add(-6 * time.Hour), DeadlineToday, 0},
		{"due exactly now", now, DeadlineToday, 0},
		{"due in six hours rounds up to a day", now.Add(6 * time.Hour), DeadlineSoon, 1},
		{"due tomorrow", now.Add(30 * time.Hour), DeadlineSoon, 2},
		{"due in three days", now.Add(71 * time.Hour), DeadlineSoon, 3},
		{"on track", now.Add(10 * 24 * time.Hour), DeadlineOnTrack, 10},
	}
	for _, tc := range cases {
		due := tc.due
		d := ClassifyDeadline(now, &due)
		if d.Kind != tc.kind {
			t.Errorf("%s: kind=%v want %v", tc.name, d.Kind, tc.kind)
		}
		if d.Kind != DeadlineToday && d.DaysLeft != tc.daysLeft {
			t.Errorf("%s: daysLeft=%d want %d", tc.name, d.DaysLeft, tc.daysLeft)
		}
	}
}

func TestClassifyDeadline_Deterministic(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	due := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	first := ClassifyDeadline(now, &due)
	for i := 0; i < 5; i++ {
		if got := ClassifyDeadline(now, &due); got != first {
			t.Fatalf("classification not deterministic: %v vs %v", got, first)
		}
	}
}

func TestActivityPage_TotalPages(t *testing.T) {
	cases := []struct {
		total, perPage, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 1},
	}
	for _, tc := range cases {
		p := ActivityPage{Total: tc.total, PerPage: tc.perPage}
		if got := p.TotalPages(); got != tc.want {
			t.Errorf("TotalPages(total=%d, perPage=%d)=%d want %d", tc.total, tc.perPage, got, tc.want)
		}
	}
}
