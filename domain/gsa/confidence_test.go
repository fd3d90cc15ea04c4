package gsa

import (
	"errors"
	"math"
	"testing"

	"gsakit/domain/core"
)

func TestZAlpha2_KnownValues(t *testing.T) {
	cases := []struct {
		confidence float64
		want       float64
	}{
		{0.99, 2.5758},
		{0.95, 1.9600},
		{0.90, 1.6449},
	}
	for _, tc := range cases {
		got, err := ZAlpha2(tc.confidence)
		if err != nil {
			t.Fatalf("ZAlpha2(%v) returned error: %v", tc.confidence, err)
		}
		if math.Abs(got-tc.want) > 1e-3 {
			t.Errorf("ZAlpha2(%v) = %v, want %v", tc.confidence, got, tc.want)
		}
	}
}

func TestZAlpha2_RejectsOutOfRange(t *testing.T) {
	for _, confidence := range []float64{0, 1, -0.5, 1.5} {
		if _, err := ZAlpha2(confidence); !errors.Is(err, core.ErrInvalidConfidence) {
			t.Errorf("ZAlpha2(%v) = %v, want ErrInvalidConfidence", confidence, err)
		}
	}
}

// Reference values from Table 1 of Bonett & Wright (2000) for
// confidence 0.99 and interval width 0.1 at the default targets.
// Counts may drift by one iteration from rounding.
func TestRequiredIterations_ReferenceTable(t *testing.T) {
	records, err := RequiredIterations(0, 0.1, 0.99)
	if err != nil {
		t.Fatalf("RequiredIterations returned error: %v", err)
	}

	want := map[Method]int{
		Pearson:  37,
		Spearman: 462,
	}
	for method, expected := range want {
		rec, ok := records[method]
		if !ok {
			t.Fatalf("no record for %s", method)
		}
		if diff := rec.Iterations - expected; diff < -1 || diff > 1 {
			t.Errorf("%s iterations = %d, want %d (+-1)", method, rec.Iterations, expected)
		}
		if rec.L2 <= rec.L1 {
			t.Errorf("%s bounds inverted: L1=%v L2=%v", method, rec.L1, rec.L2)
		}
		if rec.W0 <= 0 {
			t.Errorf("%s realized width %v, want > 0", method, rec.W0)
		}
	}
}

func TestRequiredIterations_FlooredAtMinimum(t *testing.T) {
	// A very wide target interval needs almost no samples; the floor
	// has to hold regardless.
	records, err := RequiredIterations(0, 10, 0.5)
	if err != nil {
		t.Fatalf("RequiredIterations returned error: %v", err)
	}
	for method, rec := range records {
		if rec.Iterations < minIterations {
			t.Errorf("%s iterations = %d, below floor %d", method, rec.Iterations, minIterations)
		}
	}
}

func TestRequiredIterations_MonotoneInConfidence(t *testing.T) {
	levels := []float64{0.80, 0.90, 0.95, 0.99, 0.999}
	prev := map[Method]int{}
	for _, confidence := range levels {
		records, err := RequiredIterations(0, 0.1, confidence)
		if err != nil {
			t.Fatalf("RequiredIterations(%v) returned error: %v", confidence, err)
		}
		for method, rec := range records {
			if last, ok := prev[method]; ok && rec.Iterations <= last {
				t.Errorf("%s iterations did not increase: %d at higher confidence vs %d", method, rec.Iterations, last)
			}
			prev[method] = rec.Iterations
		}
	}
}

func TestRequiredIterations_RejectsBadWidth(t *testing.T) {
	if _, err := RequiredIterations(0, 0, 0.99); !errors.Is(err, core.ErrInvalidWidth) {
		t.Errorf("width 0: got %v, want ErrInvalidWidth", err)
	}
	if _, err := RequiredIterations(0, -0.1, 0.99); !errors.Is(err, core.ErrInvalidWidth) {
		t.Errorf("negative width: got %v, want ErrInvalidWidth", err)
	}
}

func TestMethodChunkSize(t *testing.T) {
	if got := Pearson.ChunkSize(10000); got != 500 {
		t.Errorf("Pearson chunk = %d, want 500", got)
	}
	if got := Spearman.ChunkSize(10000); got != 100 {
		t.Errorf("Spearman chunk = %d, want 100", got)
	}
	// Narrow matrices cap the chunk at the parameter count
	if got := Pearson.ChunkSize(7); got != 7 {
		t.Errorf("Pearson chunk for 7 params = %d, want 7", got)
	}
	if got := Kendall.ChunkSize(50); got != 1 {
		t.Errorf("Kendall chunk = %d, want 1", got)
	}
}
