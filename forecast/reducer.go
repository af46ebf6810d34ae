// Package forecast reduces a multi-day, 3-hour forecast feed to one
// representative sample per calendar day.
package forecast

import (
	"log"
	"time"

	"weatherly/models"

	"github.com/goodsign/monday"
)

// MaxDays is the length of the reduced series
const MaxDays = 5

const noonHour = 12

// Reducer picks one midday sample per day and names its weekday in a locale
type Reducer struct {
	locale monday.Locale
}

// NewReducer creates a reducer that names weekdays in the given locale
func NewReducer(locale monday.Locale) *Reducer {
	return &Reducer{locale: locale}
}

// Reduce is shorthand for a reducer using the locale of the environment
func Reduce(samples []models.ForecastSample) []models.DailyForecastEntry {
	return NewReducer(LocaleFromEnv()).Reduce(samples)
}

type timedSample struct {
	models.ForecastSample
	at  time.Time
	day string
}

// Reduce returns at most MaxDays entries, one per calendar day in the order
// the days first appear in samples.
//
// When every one of the first MaxDays days has an exact 12:00 sample those
// samples are used. Otherwise each day is represented by the sample whose hour
// is closest to noon, the earliest one winning ties. Samples with an
// unparseable timestamp are ignored.
func (r *Reducer) Reduce(samples []models.ForecastSample) []models.DailyForecastEntry {
	timed := parseSamples(samples)

	noon := make([]timedSample, 0, MaxDays)
	seen := make(map[string]bool)
	for _, s := range timed {
		if s.at.Hour() == noonHour && !seen[s.day] {
			noon = append(noon, s)
			seen[s.day] = true
		}
	}
	if len(noon) >= MaxDays {
		return r.entries(noon[:MaxDays])
	}

	// Fallback: nearest to noon for every day present
	var days []string
	best := make(map[string]timedSample)
	for _, s := range timed {
		current, ok := best[s.day]
		if !ok {
			days = append(days, s.day)
			best[s.day] = s
			continue
		}
		if distanceToNoon(s.at) < distanceToNoon(current.at) {
			best[s.day] = s
		}
	}
	if len(days) > MaxDays {
		days = days[:MaxDays]
	}

	picked := make([]timedSample, 0, len(days))
	for _, day := range days {
		picked = append(picked, best[day])
	}
	return r.entries(picked)
}

// Weekday returns the abbreviated weekday name of t in the reducer's locale
func (r *Reducer) Weekday(t time.Time) string {
	return monday.Format(t, "Mon", r.locale)
}

func (r *Reducer) entries(picked []timedSample) []models.DailyForecastEntry {
	out := make([]models.DailyForecastEntry, 0, len(picked))
	for _, s := range picked {
		out = append(out, models.DailyForecastEntry{
			ForecastSample: s.ForecastSample,
			Weekday:        r.Weekday(s.at),
		})
	}
	return out
}

func parseSamples(samples []models.ForecastSample) []timedSample {
	out := make([]timedSample, 0, len(samples))
	skipped := 0
	for _, s := range samples {
		at, err := time.Parse(models.TimestampLayout, s.Timestamp)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, timedSample{ForecastSample: s, at: at, day: at.Format("2006-01-02")})
	}
	if skipped > 0 {
		log.Printf("forecast: skipped %d samples with malformed timestamps", skipped)
	}
	return out
}

func distanceToNoon(t time.Time) int {
	d := t.Hour() - noonHour
	if d < 0 {
		return -d
	}
	return d
}
