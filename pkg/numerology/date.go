package numerology

import (
	"fmt"
	"slices"
	"time"
)

// DateSignature holds the numerological values derived from a calendar date.
type DateSignature struct {
	Date       time.Time `json:"date"`
	LifePath   int       `json:"life_path"`
	Attitude   int       `json:"attitude"`
	Generation int       `json:"generation"`
	DayOfBirth int       `json:"day_of_birth"`
}

// CalculateDate computes the signature of the calendar date of t, read in
// t's own location.
func CalculateDate(t time.Time) (DateSignature, error) {
	year, month, day := t.Date()

	lifePath, err := reduceEach(year, int(month), day)
	if err != nil {
		return DateSignature{}, fmt.Errorf("life path of %s: %w", t.Format(time.DateOnly), err)
	}
	attitude, err := reduceEach(int(month), day)
	if err != nil {
		return DateSignature{}, fmt.Errorf("attitude of %s: %w", t.Format(time.DateOnly), err)
	}
	generation, err := Reduce(year)
	if err != nil {
		return DateSignature{}, fmt.Errorf("generation of %s: %w", t.Format(time.DateOnly), err)
	}
	dayOfBirth, err := Reduce(day)
	if err != nil {
		return DateSignature{}, fmt.Errorf("day of birth of %s: %w", t.Format(time.DateOnly), err)
	}

	return DateSignature{
		Date:       CalendarDay(t),
		LifePath:   lifePath,
		Attitude:   attitude,
		Generation: generation,
		DayOfBirth: dayOfBirth,
	}, nil
}

// CalculateDateRange returns one signature per calendar day from start to
// end, both inclusive, in ascending order.
func CalculateDateRange(start, end time.Time) ([]DateSignature, error) {
	return FindDates(start, end, nil)
}

// FindDates is CalculateDateRange restricted to the dates whose life path is
// one of lifePaths. An empty lifePaths keeps every date.
func FindDates(start, end time.Time, lifePaths []int) ([]DateSignature, error) {
	from, to := CalendarDay(start), CalendarDay(end)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end %s is before start %s",
			ErrInvalidDateRange, to.Format(time.DateOnly), from.Format(time.DateOnly))
	}

	var out []DateSignature
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		sig, err := CalculateDate(day)
		if err != nil {
			return nil, err
		}
		if len(lifePaths) > 0 && !slices.Contains(lifePaths, sig.LifePath) {
			continue
		}
		out = append(out, sig)
	}
	return out, nil
}

const secondsPerDay = 24 * 60 * 60

// DaysInRange counts the calendar days from start to end inclusive, or 0 when
// end is before start.
func DaysInRange(start, end time.Time) int {
	from, to := CalendarDay(start), CalendarDay(end)
	if to.Before(from) {
		return 0
	}
	// Sub saturates after about 292 years; count whole days from Unix time.
	return int(to.Unix()/secondsPerDay-from.Unix()/secondsPerDay) + 1
}

// CalendarDay returns midnight UTC of t's calendar date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// reduceEach reduces every number on its own, then reduces their sum.
func reduceEach(numbers ...int) (int, error) {
	total := 0
	for _, n := range numbers {
		r, err := Reduce(n)
		if err != nil {
			return 0, err
		}
		total += r
	}
	return Reduce(total)
}
