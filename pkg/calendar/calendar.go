// Package calendar provides the month arithmetic behind interest accrual and
// the time bucketing used by dashboards.
package calendar

import (
	"fmt"
	"time"
)

// FullMonthsElapsed returns the number of complete calendar months between
// start and now. A month only counts once now has reached start's
// day-of-month. A zero start yields 0, and the result is never negative.
func FullMonthsElapsed(start, now time.Time) int {
	if start.IsZero() {
		return 0
	}
	now = now.In(start.Location())

	months := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if now.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// Bucket is the grain of a dashboard time series.
type Bucket struct {
	value string
}

const (
	bucketDay   = "day"
	bucketMonth = "month"
	bucketYear  = "year"
)

var (
	BucketDay   = Bucket{value: bucketDay}
	BucketMonth = Bucket{value: bucketMonth}
	BucketYear  = Bucket{value: bucketYear}
)

var validBuckets = map[string]Bucket{
	bucketDay:   BucketDay,
	bucketMonth: BucketMonth,
	bucketYear:  BucketYear,
}

// NewBucket parses a bucket name.
func NewBucket(s string) (Bucket, error) {
	v, ok := validBuckets[s]
	if !ok {
		return Bucket{}, fmt.Errorf("invalid bucket: %q", s)
	}
	return v, nil
}

// String returns the bucket name.
func (b Bucket) String() string { return b.value }

// IsZero returns true if the bucket has not been initialised.
func (b Bucket) IsZero() bool { return b.value == "" }

// Start truncates t to the beginning of its bucket in t's location.
func (b Bucket) Start(t time.Time) time.Time {
	switch b.value {
	case bucketYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	case bucketMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// Next returns the start of the bucket after the one containing t.
func (b Bucket) Next(t time.Time) time.Time {
	s := b.Start(t)
	switch b.value {
	case bucketYear:
		return s.AddDate(1, 0, 0)
	case bucketMonth:
		return s.AddDate(0, 1, 0)
	default:
		return s.AddDate(0, 0, 1)
	}
}

// Key renders the bucket containing t as a sortable label
// (2006-01-02, 2006-01 or 2006).
func (b Bucket) Key(t time.Time) string {
	switch b.value {
	case bucketYear:
		return t.Format("2006")
	case bucketMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}
