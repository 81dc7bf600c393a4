package metrics

import (
	"math/rand"
	"sort"

	"github.com/guavas/leadgen-go/internal/models"
)

// Rand is the randomness a forecaster draws from. *rand.Rand satisfies it;
// tests supply a seeded instance for deterministic output.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// systemRand delegates to the package-level math/rand source, which is safe
// for concurrent use.
type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) Intn(n int) int   { return rand.Intn(n) }

// SystemRand returns the shared process-wide random source.
func SystemRand() Rand { return systemRand{} }

const forecastWindow = 4

// Forecaster projects short-range lead volumes from recent history using a
// trailing moving average with ±10% jitter per projected point.
type Forecaster struct {
	rnd Rand
}

func NewForecaster(rnd Rand) *Forecaster {
	if rnd == nil {
		rnd = systemRand{}
	}
	return &Forecaster{rnd: rnd}
}

// NextWeeks projects weeksAhead values from the trailing four-period mean
// of series. Fewer than four historical points yields no forecast.
func (f *Forecaster) NextWeeks(series []float64, weeksAhead int) []float64 {
	if len(series) < forecastWindow || weeksAhead <= 0 {
		return nil
	}
	var sum float64
	for _, v := range series[len(series)-forecastWindow:] {
		sum += v
	}
	avg := sum / forecastWindow

	out := make([]float64, weeksAhead)
	for i := range out {
		jitter := f.rnd.Float64()*0.2 - 0.1
		out[i] = avg * (1 + jitter)
	}
	return out
}

// LeadsByChannel forecasts each channel in the weekly history
// independently. Channels are processed in sorted order so draws from a
// seeded source land deterministically.
func (f *Forecaster) LeadsByChannel(history []models.WeeklyTrendPoint, weeksAhead int) map[string][]float64 {
	if len(history) < forecastWindow {
		return map[string][]float64{}
	}

	names := map[string]struct{}{}
	for _, p := range history {
		for ch := range p.Leads {
			names[ch] = struct{}{}
		}
	}
	ordered := make([]string, 0, len(names))
	for ch := range names {
		ordered = append(ordered, ch)
	}
	sort.Strings(ordered)

	out := make(map[string][]float64, len(ordered))
	for _, ch := range ordered {
		series := make([]float64, len(history))
		for i, p := range history {
			series[i] = float64(p.Leads[ch])
		}
		if fc := f.NextWeeks(series, weeksAhead); fc != nil {
			out[ch] = fc
		}
	}
	return out
}
