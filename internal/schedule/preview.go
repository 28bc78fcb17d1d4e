package schedule

import "time"

// monthlyScanCap bounds the forward month scan to roughly two years.
const monthlyScanCap = 24

// Preview computes the next two occurrences of d strictly after now,
// on local wall-clock time with seconds zeroed. Custom mode is never
// evaluated and yields nil, nil. The monthly rule scans forward month
// by month, skipping months where the day of month does not exist
// (day 31 in April is skipped, not clamped); both results are nil when
// the scan cap is exhausted.
func Preview(d Descriptor, now time.Time) (first, second *time.Time) {
	hour := ParseOptionalInt(d.Hour, 0)
	minute := ParseOptionalInt(d.Minute, 0)

	switch d.Mode {
	case ModeDaily:
		f := nextDaily(now, hour, minute)
		s := f.AddDate(0, 0, 1)
		return &f, &s
	case ModeWeekly:
		f := nextWeekly(now, hour, minute, ParseOptionalInt(d.Weekday, 0))
		s := f.AddDate(0, 0, 7)
		return &f, &s
	case ModeMonthly:
		day := ParseOptionalInt(d.Monthday, 1)
		f := nextMonthly(now, hour, minute, day)
		if f == nil {
			return nil, nil
		}
		s := nextMonthly(*f, hour, minute, day)
		return f, s
	}
	return nil, nil
}

func nextDaily(now time.Time, hour, minute int) time.Time {
	next := atTime(now, hour, minute)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func nextWeekly(now time.Time, hour, minute, weekday int) time.Time {
	next := atTime(now, hour, minute)
	diff := (weekday - int(now.Weekday()) + 7) % 7
	if diff == 0 && !next.After(now) {
		diff = 7
	}
	return next.AddDate(0, 0, diff)
}

func nextMonthly(base time.Time, hour, minute, day int) *time.Time {
	year, month := base.Year(), int(base.Month())
	for i := 0; i < monthlyScanCap; i++ {
		candidate := time.Date(year, time.Month(month), day, hour, minute, 0, 0, base.Location())
		// A normalized month means the day overflowed; skip the
		// whole month rather than clamping to its end.
		if int(candidate.Month()) == month && candidate.After(base) {
			return &candidate
		}
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return nil
}

func atTime(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
