package history

import (
	"testing"
	"time"

	"github.com/revisehq/revise/internal/domain"
)

var today = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func eventOn(day time.Time, performance int) domain.ReviewEvent {
	return domain.ReviewEvent{
		DeckID:      "deck",
		CardID:      "card",
		Performance: performance,
		ReviewedAt:  day,
	}
}

func daysAgo(n int) time.Time {
	return today.AddDate(0, 0, -n)
}

func TestAggregateDailyStats(t *testing.T) {
	t.Run("groups events by UTC calendar day", func(t *testing.T) {
		events := []domain.ReviewEvent{
			eventOn(today, 100),
			eventOn(today.Add(-3*time.Hour), 0),
			eventOn(daysAgo(1), 50),
		}
		summary := Aggregate(events, today)
		if len(summary.Daily) != 2 {
			t.Fatalf("Expected 2 daily stats, got %d", len(summary.Daily))
		}
	})

	t.Run("averages performance per day", func(t *testing.T) {
		events := []domain.ReviewEvent{
			eventOn(today, 100),
			eventOn(today.Add(time.Hour), 0),
		}
		summary := Aggregate(events, today)
		if len(summary.Daily) != 1 {
			t.Fatalf("Expected 1 daily stat, got %d", len(summary.Daily))
		}
		day := summary.Daily[0]
		if day.Reviews != 2 {
			t.Errorf("Expected 2 reviews, got %d", day.Reviews)
		}
		if day.AveragePerformance != 50 {
			t.Errorf("Expected average performance 50, got %.1f", day.AveragePerformance)
		}
	})

	t.Run("sorts days ascending", func(t *testing.T) {
		events := []domain.ReviewEvent{
			eventOn(today, 100),
			eventOn(daysAgo(3), 100),
			eventOn(daysAgo(1), 100),
		}
		summary := Aggregate(events, today)
		for i := 1; i < len(summary.Daily); i++ {
			if !summary.Daily[i-1].Date.Before(summary.Daily[i].Date) {
				t.Errorf("Daily stats not ascending at index %d", i)
			}
		}
	})

	t.Run("events near midnight land on their UTC day", func(t *testing.T) {
		lateNight := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
		earlyMorning := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)
		summary := Aggregate([]domain.ReviewEvent{
			eventOn(lateNight, 100),
			eventOn(earlyMorning, 100),
		}, today)
		if len(summary.Daily) != 2 {
			t.Errorf("Expected the two events to land on separate days, got %d", len(summary.Daily))
		}
	})

	t.Run("no events yields an empty summary", func(t *testing.T) {
		summary := Aggregate(nil, today)
		if len(summary.Daily) != 0 {
			t.Errorf("Expected no daily stats, got %d", len(summary.Daily))
		}
		if summary.Streak != 0 {
			t.Errorf("Expected streak 0, got %d", summary.Streak)
		}
	})
}

func TestStreak(t *testing.T) {
	t.Run("counts consecutive days ending today", func(t *testing.T) {
		events := []domain.ReviewEvent{
			eventOn(daysAgo(3), 100),
			eventOn(daysAgo(2), 100),
			eventOn(daysAgo(1), 100),
			eventOn(today, 100),
		}
		if got := Aggregate(events, today).Streak; got != 4 {
			t.Errorf("Expected streak 4, got %d", got)
		}
	})

	t.Run("stops at the first gap day", func(t *testing.T) {
		events := []domain.ReviewEvent{
			eventOn(daysAgo(3), 100),
			// gap at daysAgo(2)
			eventOn(daysAgo(1), 100),
			eventOn(today, 100),
		}
		if got := Aggregate(events, today).Streak; got != 2 {
			t.Errorf("Expected streak 2, got %d", got)
		}
	})

	t.Run("not studying yet today keeps the streak alive", func(t *testing.T) {
		events := []domain.ReviewEvent{
			eventOn(daysAgo(2), 100),
			eventOn(daysAgo(1), 100),
		}
		if got := Aggregate(events, today).Streak; got != 2 {
			t.Errorf("Expected streak 2 when today has no events yet, got %d", got)
		}
	})

	t.Run("zero when neither today nor yesterday has events", func(t *testing.T) {
		events := []domain.ReviewEvent{
			eventOn(daysAgo(2), 100),
			eventOn(daysAgo(3), 100),
		}
		if got := Aggregate(events, today).Streak; got != 0 {
			t.Errorf("Expected streak 0, got %d", got)
		}
	})

	t.Run("multiple reviews on one day count once", func(t *testing.T) {
		events := []domain.ReviewEvent{
			eventOn(today, 100),
			eventOn(today.Add(time.Hour), 50),
			eventOn(today.Add(2*time.Hour), 0),
		}
		if got := Aggregate(events, today).Streak; got != 1 {
			t.Errorf("Expected streak 1, got %d", got)
		}
	})
}

func TestDayKey(t *testing.T) {
	key := DayKey(time.Date(2026, 3, 10, 23, 45, 0, 0, time.UTC))
	if key != "2026-03-10" {
		t.Errorf("Expected day key 2026-03-10, got %s", key)
	}
}
