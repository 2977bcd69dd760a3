package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}

	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}

	if !NearlyEqual(1e9, 1e9+1e-4, 0) {
		t.Fatal("expected relative comparison for large values")
	}
}

func TestNonNegative(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{name: "positive", value: 0.25, expected: 0.25},
		{name: "zero", value: 0, expected: 0},
		{name: "drift", value: -1e-17, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NonNegative(tt.value); got != tt.expected {
				t.Fatalf("NonNegative(%v) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestLinearToDB(t *testing.T) {
	if db := LinearToDB(0.5); !NearlyEqual(db, -6.0206, 1e-4) {
		t.Fatalf("LinearToDB(0.5) = %v, want ~-6.02", db)
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}

	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestLinearPowerToDBMatchesAmplitude(t *testing.T) {
	amp := 0.3
	if !NearlyEqual(LinearPowerToDB(amp*amp), LinearToDB(amp), 1e-10) {
		t.Fatalf("power and amplitude dB disagree: %v vs %v", LinearPowerToDB(amp*amp), LinearToDB(amp))
	}

	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}

	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}
}
