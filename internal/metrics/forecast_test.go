package metrics

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/guavas/leadgen-go/internal/models"
)

func TestForecastRequiresHistory(t *testing.T) {
	f := NewForecaster(rand.New(rand.NewSource(1)))
	if got := f.NextWeeks([]float64{10, 20, 30}, 4); got != nil {
		t.Fatalf("expected no forecast for short history, got %v", got)
	}
}

func TestForecastJitterBounds(t *testing.T) {
	f := NewForecaster(rand.New(rand.NewSource(42)))
	series := []float64{40, 50, 60, 50}
	avg := 50.0
	out := f.NextWeeks(series, 8)
	if len(out) != 8 {
		t.Fatalf("expected 8 points, got %d", len(out))
	}
	for i, v := range out {
		if v < avg*0.9-1e-9 || v > avg*1.1+1e-9 {
			t.Fatalf("point %d outside ±10%% of mean: %v", i, v)
		}
	}
}

func TestForecastUsesTrailingWindow(t *testing.T) {
	f := NewForecaster(rand.New(rand.NewSource(7)))
	// Early outliers must not influence the trailing-4 mean.
	series := []float64{100000, 100000, 10, 10, 10, 10}
	for _, v := range f.NextWeeks(series, 4) {
		if v > 11 {
			t.Fatalf("forecast leaked early history: %v", v)
		}
	}
}

func TestForecastDeterministicWithSeed(t *testing.T) {
	history := weeklyHistory(6)
	a := NewForecaster(rand.New(rand.NewSource(9))).LeadsByChannel(history, 4)
	b := NewForecaster(rand.New(rand.NewSource(9))).LeadsByChannel(history, 4)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different forecasts:\n%v\n%v", a, b)
	}
}

func TestLeadsByChannelShortHistory(t *testing.T) {
	f := NewForecaster(rand.New(rand.NewSource(1)))
	got := f.LeadsByChannel(weeklyHistory(3), 4)
	if len(got) != 0 {
		t.Fatalf("expected empty forecast, got %v", got)
	}
}

func weeklyHistory(weeks int) []models.WeeklyTrendPoint {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.WeeklyTrendPoint, 0, weeks)
	for i := 0; i < weeks; i++ {
		out = append(out, models.WeeklyTrendPoint{
			WeekStart: start.AddDate(0, 0, 7*i),
			Leads: map[string]int{
				"LinkedIn Organic": 40 + i,
				"Webinar Program":  30 + i,
			},
		})
	}
	return out
}

func TestForecastAveragesAroundMean(t *testing.T) {
	f := NewForecaster(rand.New(rand.NewSource(3)))
	series := []float64{50, 50, 50, 50}
	out := f.NextWeeks(series, 1000)
	var sum float64
	for _, v := range out {
		sum += v
	}
	if mean := sum / float64(len(out)); math.Abs(mean-50) > 2 {
		t.Fatalf("jitter is not centred on the trailing mean: %v", mean)
	}
}
