// Package history folds the append-only review-event log into per-day
// statistics and a consecutive-day streak. It is a pure function of the
// events; nothing here is persisted or incrementally maintained.
//
// Day boundaries are UTC everywhere: bucketing, streak walking, and heatmap
// keys all go through dayOf. Mixing conventions would silently break streaks
// across time zones.
package history

import (
	"sort"
	"time"

	"github.com/revisehq/revise/internal/domain"
)

// DailyStat summarizes one UTC calendar day of reviews.
type DailyStat struct {
	Date               time.Time // midnight UTC
	Reviews            int
	AveragePerformance float64 // 0-100
}

// Summary is the result of folding a user's review history.
type Summary struct {
	Daily  []DailyStat
	Streak int
}

type dayBucket struct {
	reviews int
	sum     int
}

// Aggregate groups events by UTC calendar day and computes the streak ending
// at the given reference time. Event performance is already on the canonical
// 0-100 scale; no rating conversion happens here.
func Aggregate(events []domain.ReviewEvent, today time.Time) Summary {
	buckets := make(map[time.Time]*dayBucket)
	for _, ev := range events {
		day := dayOf(ev.ReviewedAt)
		b := buckets[day]
		if b == nil {
			b = &dayBucket{}
			buckets[day] = b
		}
		b.reviews++
		b.sum += ev.Performance
	}

	daily := make([]DailyStat, 0, len(buckets))
	for day, b := range buckets {
		daily = append(daily, DailyStat{
			Date:               day,
			Reviews:            b.reviews,
			AveragePerformance: float64(b.sum) / float64(b.reviews),
		})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date.Before(daily[j].Date)
	})

	return Summary{Daily: daily, Streak: streak(buckets, today)}
}

// streak counts consecutive days with at least one review, walking backward
// from today. A user who has not studied yet today is not penalized: when
// today is empty the walk starts from yesterday instead. The streak is zero
// when neither today nor yesterday has a review.
func streak(days map[time.Time]*dayBucket, today time.Time) int {
	day := dayOf(today)
	if days[day] == nil {
		day = day.AddDate(0, 0, -1)
	}

	count := 0
	for days[day] != nil {
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats a day for heatmap output.
func DayKey(t time.Time) string {
	return dayOf(t).Format("2006-01-02")
}
