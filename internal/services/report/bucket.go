package report

import (
	"time"

	"github.com/rustamq/sellerpulse/internal/models"
)

const dayKeyFormat = "2006-01-02"

// BucketByDay groups orders into dense calendar-day buckets from start to
// end inclusive, in the given timezone, in chronological order. Every day
// in the range gets an entry even with zero activity. Orders with an
// unknown date (TimestampMs == 0) are excluded rather than assigned to the
// epoch day. The boundaries name calendar days by their date components,
// whatever zone they were parsed in; only order timestamps are instants.
func BucketByDay(orders []models.Order, start, end time.Time, loc *time.Location) []models.DayStats {
	if loc == nil {
		loc = time.UTC
	}

	startDay := dateIn(start, loc)
	endDay := dateIn(end, loc)
	if endDay.Before(startDay) {
		return nil
	}

	var days []models.DayStats
	index := make(map[string]int)
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayKeyFormat)
		index[key] = len(days)
		days = append(days, models.DayStats{Date: key})
	}

	for i := range orders {
		order := &orders[i]
		if order.TimestampMs == 0 {
			continue
		}
		key := time.UnixMilli(order.TimestampMs).In(loc).Format(dayKeyFormat)
		idx, ok := index[key]
		if !ok {
			continue
		}
		switch order.Bucket() {
		case models.BucketSold:
			days[idx].Sold++
		case models.BucketCanceled:
			days[idx].Canceled++
		}
	}

	return days
}

// WeekRange returns the start and end days of the ISO week containing ref
// in the given timezone, Monday through Sunday. With previous set, it
// returns the week before.
func WeekRange(ref time.Time, loc *time.Location, previous bool) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}

	day := truncateToDay(ref.In(loc))

	// time.Weekday puts Sunday at 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	if previous {
		monday = monday.AddDate(0, 0, -7)
	}

	return monday, monday.AddDate(0, 0, 6)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dateIn reinterprets t's calendar date as midnight in loc. Converting the
// instant instead would shift a UTC-parsed YYYY-MM-DD back one day in any
// zone behind UTC.
func dateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
