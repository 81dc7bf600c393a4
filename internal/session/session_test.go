package session

import (
	"testing"

	"github.com/guavas/leadgen-go/internal/loader"
	"github.com/guavas/leadgen-go/internal/models"
)

func TestNewSessionHasDefaults(t *testing.T) {
	s := New()
	if s.Thresholds() != DefaultThresholds() {
		t.Fatalf("unexpected thresholds: %+v", s.Thresholds())
	}
	if s.Benchmarks() != DefaultBenchmarks() {
		t.Fatalf("unexpected benchmarks: %+v", s.Benchmarks())
	}
	if s.Snapshot().Loaded {
		t.Fatal("fresh session should not report loaded data")
	}
}

func TestSetDataAssignsUploadID(t *testing.T) {
	s := New()
	id := s.SetData(loader.DemoDataset())
	if id == "" {
		t.Fatal("expected an upload id")
	}
	snap := s.Snapshot()
	if !snap.Loaded || snap.UploadID != id {
		t.Fatalf("snapshot out of sync: %+v", snap)
	}
	if len(snap.Channels) == 0 {
		t.Fatal("expected demo channels in snapshot")
	}

	second := s.SetData(loader.DemoDataset())
	if second == id {
		t.Fatal("each upload should get a fresh id")
	}
}

func TestSaveAndResetSettings(t *testing.T) {
	s := New()
	th := models.ThresholdConfig{MaxCPL: 80, PartnerInactiveDays: 30}
	bm := models.BenchmarkConfig{TargetCPL: 20, MonthlyLeadGoal: 150}
	s.SaveSettings(th, bm)

	if s.Thresholds() != th {
		t.Fatalf("save did not apply thresholds: %+v", s.Thresholds())
	}
	if s.Benchmarks() != bm {
		t.Fatalf("save did not apply benchmarks: %+v", s.Benchmarks())
	}

	s.ResetSettings()
	if s.Thresholds() != DefaultThresholds() || s.Benchmarks() != DefaultBenchmarks() {
		t.Fatal("reset did not restore defaults")
	}
}
