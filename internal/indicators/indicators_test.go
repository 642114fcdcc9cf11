package indicators

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if len(got) != 5 {
		t.Fatalf("SMA length = %d, want 5", len(got))
	}
	if !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Errorf("SMA warm-up = %v, %v, want NaN", got[0], got[1])
	}
	for i, want := range []float64{2, 3, 4} {
		if got[i+2] != want {
			t.Errorf("SMA[%d] = %v, want %v", i+2, got[i+2], want)
		}
	}
}

func TestEMASeededWithSMA(t *testing.T) {
	got := EMA([]float64{1, 2, 3, 4, 5}, 3)
	if !math.IsNaN(got[1]) {
		t.Errorf("EMA[1] = %v, want NaN", got[1])
	}
	if got[2] != 2 {
		t.Errorf("EMA[2] = %v, want SMA seed 2", got[2])
	}
	// k = 2/(3+1) = 0.5: EMA[3] = (4-2)*0.5 + 2 = 3.
	if got[3] != 3 {
		t.Errorf("EMA[3] = %v, want 3", got[3])
	}
}

func TestEMAShortInput(t *testing.T) {
	got := EMA([]float64{1, 2}, 5)
	for i, v := range got {
		if !math.IsNaN(v) {
			t.Errorf("EMA[%d] = %v, want NaN for input shorter than period", i, v)
		}
	}
}

func TestMeanStd(t *testing.T) {
	mean, std := MeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8)
	last := len(mean) - 1
	if mean[last] != 5 {
		t.Errorf("mean = %v, want 5", mean[last])
	}
	if std[last] != 2 {
		t.Errorf("std = %v, want 2", std[last])
	}
}

func TestMeanStdConstantInput(t *testing.T) {
	_, std := MeanStd([]float64{3, 3, 3, 3}, 2)
	for i := 1; i < len(std); i++ {
		if std[i] != 0 {
			t.Errorf("std[%d] = %v, want 0 for constant input", i, std[i])
		}
	}
}

func TestRSIBounded(t *testing.T) {
	values := []float64{44, 47, 45, 50, 49, 52, 48, 51, 53, 50, 54, 52}
	got := RSI(values, 5)
	for i, v := range got {
		if math.IsNaN(v) {
			if i >= 5 {
				t.Errorf("RSI[%d] is NaN after warm-up", i)
			}
			continue
		}
		if v < 0 || v > 100 {
			t.Errorf("RSI[%d] = %v, out of [0, 100]", i, v)
		}
	}
}

func TestRSIAllGains(t *testing.T) {
	got := RSI([]float64{1, 2, 3, 4, 5, 6}, 3)
	if got[5] != 100 {
		t.Errorf("RSI of monotone rise = %v, want 100", got[5])
	}
}

func TestRSIAllLosses(t *testing.T) {
	got := RSI([]float64{6, 5, 4, 3, 2, 1}, 3)
	if got[5] != 0 {
		t.Errorf("RSI of monotone fall = %v, want 0", got[5])
	}
}

func TestRSIFlatWindow(t *testing.T) {
	got := RSI([]float64{5, 5, 5, 5, 5, 5}, 3)
	if got[5] != 50 {
		t.Errorf("RSI of flat window = %v, want 50", got[5])
	}
}
