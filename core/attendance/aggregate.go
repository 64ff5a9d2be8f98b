package attendance

// Aggregate buckets attendance records by (date, department) and tallies
// statuses. Pure: same records in, same map out. A day with no record
// yields no entry; "attendance not taken" must stay distinguishable from
// "0% present" for the calendar view.
//
// filterDepartment narrows the input when non-empty; otherwise all
// departments are included, each in its own bucket.
//
// Attendees with an unknown status are skipped entirely: they count
// toward neither a status bucket nor Total, keeping the bucket-sum
// invariant intact.
func Aggregate(records []Record, filterDepartment string) map[DayKey]DayAggregate {
	out := make(map[DayKey]DayAggregate)
	for _, rec := range records {
		if filterDepartment != "" && rec.Department != filterDepartment {
			continue
		}
		key := DayKeyFor(rec.Date, rec.Department)
		agg := out[key]
		for _, att := range rec.Attendees {
			switch att.Status {
			case StatusPresent:
				agg.Present++
			case StatusAbsent:
				agg.Absent++
			case StatusLate:
				agg.Late++
			case StatusExcused:
				agg.Excused++
			default:
				continue
			}
			agg.Total++
		}
		out[key] = agg
	}
	return out
}

// SummarizeMonths rolls per-day aggregates up into per-month totals.
func SummarizeMonths(days map[DayKey]DayAggregate) map[MonthKey]DayAggregate {
	out := make(map[MonthKey]DayAggregate, len(days))
	for key, agg := range days {
		mk := key.MonthOf()
		out[mk] = out[mk].add(agg)
	}
	return out
}
