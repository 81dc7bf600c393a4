// Package session holds the single mutable state of the dashboard: the
// last uploaded dataset and the user's thresholds and benchmarks. The
// engines never touch it directly; handlers read a snapshot at the start
// of each evaluation and pass values in.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guavas/leadgen-go/internal/loader"
	"github.com/guavas/leadgen-go/internal/models"
)

// DefaultThresholds returns the alert boundaries applied until the user
// saves their own.
func DefaultThresholds() models.ThresholdConfig {
	return models.ThresholdConfig{
		MaxCPL:              50,
		MinConversionRate:   15,
		MinLeadsPerWeek:     40,
		PartnerInactiveDays: 60,
		ContentOverdueDays:  2,
	}
}

// DefaultBenchmarks returns the strategy-document targets.
func DefaultBenchmarks() models.BenchmarkConfig {
	return models.BenchmarkConfig{
		TargetCPL:           25,
		TargetLeadToMeeting: 20,
		TargetMeetingToDeal: 18,
		MonthlyLeadGoal:     100,
		MonthlyRevenueGoal:  500000,
	}
}

type Session struct {
	mu sync.RWMutex

	thresholds models.ThresholdConfig
	benchmarks models.BenchmarkConfig

	data       loader.Dataset
	uploadID   string
	uploadedAt time.Time
	loaded     bool
}

func New() *Session {
	return &Session{
		thresholds: DefaultThresholds(),
		benchmarks: DefaultBenchmarks(),
	}
}

// Snapshot is a point-in-time read of the loaded data.
type Snapshot struct {
	Channels   []models.ChannelRecord
	KPIs       models.KpiSnapshot
	Content    []models.ContentEntry
	Partners   []models.PartnerRecord
	Validation map[string]models.TabValidation
	UploadID   string
	UploadedAt time.Time
	Loaded     bool
}

// SetData replaces the loaded dataset and returns the new upload ID.
func (s *Session) SetData(d loader.Dataset) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d
	s.uploadID = uuid.NewString()
	s.uploadedAt = time.Now()
	s.loaded = true
	return s.uploadID
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Channels:   s.data.Channels,
		KPIs:       s.data.KPIs,
		Content:    s.data.Content,
		Partners:   s.data.Partners,
		Validation: s.data.Validation,
		UploadID:   s.uploadID,
		UploadedAt: s.uploadedAt,
		Loaded:     s.loaded,
	}
}

func (s *Session) Thresholds() models.ThresholdConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholds
}

func (s *Session) Benchmarks() models.BenchmarkConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.benchmarks
}

// SaveSettings replaces both configs; this is the only mutation path for
// thresholds and benchmarks.
func (s *Session) SaveSettings(th models.ThresholdConfig, bm models.BenchmarkConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thresholds = th
	s.benchmarks = bm
}

// ResetSettings restores the default thresholds and benchmarks.
func (s *Session) ResetSettings() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thresholds = DefaultThresholds()
	s.benchmarks = DefaultBenchmarks()
}
