package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"gsakit/adapters/matrix"
	"gsakit/domain/core"
	"gsakit/domain/gsa"
)

func uniformMatrix(t *testing.T, rows, cols int, seed int64) (*matrix.Memory, [][]float64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	x := make([][]float64, rows)
	for i := range x {
		row := make([]float64, cols)
		for j := range row {
			row[j] = rng.Float64()
		}
		x[i] = row
	}
	src, err := matrix.NewMemory(x)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	return src, x
}

func TestCorrelateParallel_WorkerCountInvariance(t *testing.T) {
	// 250 columns exceeds the Spearman chunk width, so 4 workers really
	// do get distinct column ranges.
	const numParams = 250
	src, x := uniformMatrix(t, 200, numParams, 11)
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = row[0] - 2*row[135]
	}

	for _, method := range []gsa.Method{gsa.Pearson, gsa.Spearman} {
		single, err := CorrelateParallel(context.Background(), src, y, numParams, 1, method, nil)
		if err != nil {
			t.Fatalf("%s with 1 worker: %v", method, err)
		}
		parallel, err := CorrelateParallel(context.Background(), src, y, numParams, 4, method, nil)
		if err != nil {
			t.Fatalf("%s with 4 workers: %v", method, err)
		}
		if len(single) != numParams || len(parallel) != numParams {
			t.Fatalf("%s: result lengths %d/%d, want %d", method, len(single), len(parallel), numParams)
		}
		for j := range single {
			if math.Abs(single[j]-parallel[j]) > 1e-12 {
				t.Errorf("%s column %d: %v (1 worker) vs %v (4 workers)", method, j, single[j], parallel[j])
			}
		}
	}
}

func TestCorrelateParallel_MoreWorkersThanColumns(t *testing.T) {
	src, x := uniformMatrix(t, 100, 3, 13)
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = row[1]
	}
	got, err := CorrelateParallel(context.Background(), src, y, 3, 16, gsa.Pearson, nil)
	if err != nil {
		t.Fatalf("CorrelateParallel: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("result length %d, want 3", len(got))
	}
	if got[1] < 0.99 {
		t.Errorf("column 1: got %v, want ~1", got[1])
	}
}

func TestCorrelateParallel_SelectedRowsSubset(t *testing.T) {
	src, x := uniformMatrix(t, 400, 4, 17)
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = 3 * row[2]
	}

	rows := make([]int, 0, 200)
	for i := 0; i < 400; i += 2 {
		rows = append(rows, i)
	}
	got, err := CorrelateParallel(context.Background(), src, y, 4, 2, gsa.Pearson, rows)
	if err != nil {
		t.Fatalf("CorrelateParallel: %v", err)
	}
	if math.Abs(got[2]-1) > 1e-9 {
		t.Errorf("column 2 on row subset: got %v, want 1", got[2])
	}

	// Manual subset must agree exactly with the driver's subset handling
	sub := make([][]float64, 0, len(rows))
	ySub := make([]float64, 0, len(rows))
	for _, r := range rows {
		sub = append(sub, x[r])
		ySub = append(ySub, y[r])
	}
	subSrc, err := matrix.NewMemory(sub)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	want, err := CorrelateParallel(context.Background(), subSrc, ySub, 4, 2, gsa.Pearson, nil)
	if err != nil {
		t.Fatalf("CorrelateParallel on subset matrix: %v", err)
	}
	for j := range want {
		if math.Abs(got[j]-want[j]) > 1e-12 {
			t.Errorf("column %d: subset rows %v vs subset matrix %v", j, got[j], want[j])
		}
	}
}

func TestCorrelateParallel_RejectsBadParams(t *testing.T) {
	src, _ := uniformMatrix(t, 10, 2, 19)
	if _, err := CorrelateParallel(context.Background(), src, make([]float64, 10), 0, 1, gsa.Pearson, nil); !errors.Is(err, core.ErrInvalidParams) {
		t.Errorf("numParams=0: got %v, want ErrInvalidParams", err)
	}
	if _, err := CorrelateParallel(context.Background(), src, make([]float64, 10), 2, 1, gsa.Pearson, []int{42}); err == nil {
		t.Error("out-of-range selected row: want error")
	}
}

// failingSource fails reads for columns past a threshold, simulating a
// broken worker partway through the fan-out.
type failingSource struct {
	inner  *matrix.Memory
	failAt int
}

func (f *failingSource) Rows() int { return f.inner.Rows() }
func (f *failingSource) Cols() int { return f.inner.Cols() }

func (f *failingSource) ReadColumns(start, end int, rows []int) ([][]float64, error) {
	if end > f.failAt {
		return nil, fmt.Errorf("simulated read failure at column %d", end)
	}
	return f.inner.ReadColumns(start, end, rows)
}

func TestCorrelateParallel_WorkerFailureAbortsCall(t *testing.T) {
	inner, x := uniformMatrix(t, 50, 8, 23)
	y := make([]float64, len(x))
	src := &failingSource{inner: inner, failAt: 4}

	got, err := CorrelateParallel(context.Background(), src, y, 8, 4, gsa.Pearson, nil)
	if !errors.Is(err, core.ErrWorkerFailure) {
		t.Fatalf("got %v, want ErrWorkerFailure", err)
	}
	if got != nil {
		t.Error("partial results leaked from a failed driver call")
	}
}

func TestCorrelateParallel_EndToEndSignalDetection(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rows, cols := 1000, 5
	x := make([][]float64, rows)
	y := make([]float64, rows)
	for i := range x {
		row := make([]float64, cols)
		for j := range row {
			row[j] = rng.Float64()
		}
		x[i] = row
		y[i] = row[0] + 0.1*rng.NormFloat64()
	}
	src, err := matrix.NewMemory(x)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}

	got, err := CorrelateParallel(context.Background(), src, y, cols, 4, gsa.Pearson, nil)
	if err != nil {
		t.Fatalf("CorrelateParallel: %v", err)
	}
	if got[0] <= 0.5 {
		t.Errorf("driving parameter: got %v, want > 0.5", got[0])
	}
	for j := 1; j < cols; j++ {
		if math.Abs(got[j]) > 0.1 {
			t.Errorf("noise parameter %d: got %v, want within +-0.1 of 0", j, got[j])
		}
	}
}
