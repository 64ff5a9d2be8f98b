package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/darasa-app/darasa/core"
)

type (
	Repository interface {
		// QueryRecords applies AND operation on available Filter fields.
		QueryRecords(ctx context.Context, filter Filter) ([]Record, error)
	}

	Service struct {
		repo Repository
	}

	// Filter narrows which records are fetched.
	Filter struct {
		Department string    `query:"department" validate:"omitempty,alphanum_"`
		From       time.Time `query:"from"`
		To         time.Time `query:"to"`
	}

	// Calendar is the derived attendance projection for a filtered range.
	// Days carries one entry per (date, department) with a record; absent
	// keys mean attendance was not taken.
	Calendar struct {
		Days   map[DayKey]DayAggregate   `json:"-"`
		Months map[MonthKey]DayAggregate `json:"-"`
	}

	// DayEntry is a Calendar day flattened for serialization, sorted by
	// date then department for deterministic payloads.
	DayEntry struct {
		DayKey
		DayAggregate
		PresentRate float64 `json:"present_rate"`
	}
)

func (f *Filter) Clean() {
	f.Department = core.CleanString(f.Department)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Calendar fetches the filtered records and derives per-day and per-month
// aggregates. Lookup by day key is O(1) so the consumer can re-query
// cheaply as the visible month changes.
func (svc *Service) Calendar(ctx context.Context, filter Filter) (*Calendar, error) {
	records, err := svc.repo.QueryRecords(ctx, filter)
	if err != nil {
		return nil, err
	}
	days := Aggregate(records, filter.Department)
	return &Calendar{
		Days:   days,
		Months: SummarizeMonths(days),
	}, nil
}

// Entries flattens the per-day aggregates into a stable-ordered slice.
func (c *Calendar) Entries() []DayEntry {
	entries := make([]DayEntry, 0, len(c.Days))
	for key, agg := range c.Days {
		entries = append(entries, DayEntry{
			DayKey:       key,
			DayAggregate: agg,
			PresentRate:  agg.PresentRate(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Department < entries[j].Department
	})
	return entries
}

// MonthEntries flattens the month summaries, sorted by month then department.
func (c *Calendar) MonthEntries() []MonthEntry {
	entries := make([]MonthEntry, 0, len(c.Months))
	for key, agg := range c.Months {
		entries = append(entries, MonthEntry{
			MonthKey:     key,
			DayAggregate: agg,
			PresentRate:  agg.PresentRate(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Month != entries[j].Month {
			return entries[i].Month < entries[j].Month
		}
		return entries[i].Department < entries[j].Department
	})
	return entries
}

// MonthEntry is a month summary flattened for serialization.
type MonthEntry struct {
	MonthKey
	DayAggregate
	PresentRate float64 `json:"present_rate"`
}
