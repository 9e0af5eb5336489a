package generator

import (
	"math"
	"testing"
	"time"

	"github.com/chrissnell/pumpmon/internal/classify"
	"github.com/chrissnell/pumpmon/internal/types"
)

func TestGenerateShape(t *testing.T) {
	gen := New(100, 10*time.Minute, 42)
	ds := gen.Generate()

	if len(ds.Readings) != 100 {
		t.Fatalf("generated %d readings, want 100", len(ds.Readings))
	}
	if ds.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("dataset ID was not assigned")
	}

	// Most-recent-first ordering with the configured spacing.
	for i := 1; i < len(ds.Readings); i++ {
		prev := ds.Readings[i-1].Timestamp
		cur := ds.Readings[i].Timestamp
		if !cur.Before(prev) {
			t.Fatalf("reading %d (%v) is not older than reading %d (%v)", i, cur, i-1, prev)
		}
		if gap := prev.Sub(cur); gap != 10*time.Minute {
			t.Fatalf("gap between readings %d and %d is %v, want 10m", i-1, i, gap)
		}
	}
}

func TestGenerateAnnotation(t *testing.T) {
	gen := New(100, 10*time.Minute, 7)
	ds := gen.Generate()

	for i, r := range ds.Readings {
		expected := classify.Efficiency(r.InletPressure, r.OutletPressure, r.FlowRate, r.Power)
		if math.Abs(r.Efficiency-expected) > 1e-12 {
			t.Errorf("reading %d: efficiency %v does not match derivation %v", i, r.Efficiency, expected)
		}

		wantStatus, wantExplanation := classify.Classify(r)
		if r.Status != wantStatus {
			t.Errorf("reading %d: status %v, want %v", i, r.Status, wantStatus)
		}
		if r.Explanation != wantExplanation {
			t.Errorf("reading %d: explanation %q, want %q", i, r.Explanation, wantExplanation)
		}
		if r.Status != types.StatusOK && r.Status != types.StatusCritical {
			t.Errorf("reading %d: unexpected status %q", i, r.Status)
		}
	}
}

func TestGenerateDistributionsLookSane(t *testing.T) {
	gen := New(1000, time.Minute, 99)
	ds := gen.Generate()

	var inletSum, powerSum float64
	for _, r := range ds.Readings {
		inletSum += r.InletPressure
		powerSum += r.Power
	}
	inletMean := inletSum / float64(len(ds.Readings))
	powerMean := powerSum / float64(len(ds.Readings))

	// Loose bounds; just catches swapped or unseeded distributions.
	if inletMean < 2.3 || inletMean > 2.7 {
		t.Errorf("inlet pressure mean = %v, want roughly 2.5", inletMean)
	}
	if powerMean < 45 || powerMean > 55 {
		t.Errorf("power mean = %v, want roughly 50", powerMean)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := New(10, time.Minute, 1234).Generate()
	b := New(10, time.Minute, 1234).Generate()

	for i := range a.Readings {
		if a.Readings[i].InletPressure != b.Readings[i].InletPressure ||
			a.Readings[i].Power != b.Readings[i].Power {
			t.Fatalf("reading %d differs between identically-seeded generators", i)
		}
	}
	if a.ID == b.ID {
		t.Error("datasets from separate generations share an ID")
	}
}

func TestGenerateDefaults(t *testing.T) {
	gen := New(0, 0, 0)
	ds := gen.Generate()

	if len(ds.Readings) != DefaultCount {
		t.Errorf("generated %d readings, want default %d", len(ds.Readings), DefaultCount)
	}
}
