// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package lab

import (
	"errors"
	"math"
	"testing"
)

func TestParseRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		wantLow  float64
		wantHigh float64
		wantErr  bool
	}{
		{name: "simple", text: "13.0-18.0 g/dL", wantLow: 13.0, wantHigh: 18.0},
		{name: "percent suffix", text: "40-54%", wantLow: 40, wantHigh: 54},
		{name: "first two numbers only", text: "1.5-8.0 ×10³/μL (40-60%)", wantLow: 1.5, wantHigh: 8.0},
		{name: "unit exponent after bounds", text: "4.6-6.2 ×10⁶/μL", wantLow: 4.6, wantHigh: 6.2},
		{name: "no unit", text: "1.0-2.2", wantLow: 1.0, wantHigh: 2.2},
		{name: "single number", text: "< 5 mg/dL", wantErr: true},
		{name: "empty", text: "", wantErr: true},
		{name: "words only", text: "see laboratory", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			low, high, err := ParseRange(tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrUnparseableRange) {
					t.Fatalf("expected ErrUnparseableRange, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseRange(%q) failed: %v", tt.text, err)
			}

			if low != tt.wantLow || high != tt.wantHigh {
				t.Fatalf("ParseRange(%q) = (%v, %v), want (%v, %v)", tt.text, low, high, tt.wantLow, tt.wantHigh)
			}
		})
	}
}

func TestClassifyBoundariesAreInclusive(t *testing.T) {
	t.Parallel()

	const eps = 1e-9

	ranges := []string{
		"13.0-18.0 g/dL",
		"0.0-0.5 ×10³/μL (1-4%)",
		"150-450 ×10³/μL",
		"1.0-2.2",
	}

	for _, text := range ranges {
		low, high, err := ParseRange(text)
		if err != nil {
			t.Fatalf("ParseRange(%q) failed: %v", text, err)
		}

		if got := Classify(low, text); got != VerdictNormal {
			t.Errorf("Classify(low=%v, %q) = %s, want NORMAL", low, text, got)
		}
		if got := Classify(high, text); got != VerdictNormal {
			t.Errorf("Classify(high=%v, %q) = %s, want NORMAL", high, text, got)
		}
		if got := Classify(low-eps, text); got != VerdictLow {
			t.Errorf("Classify(low-eps, %q) = %s, want LOW", text, got)
		}
		if got := Classify(high+eps, text); got != VerdictHigh {
			t.Errorf("Classify(high+eps, %q) = %s, want HIGH", text, got)
		}
	}
}

func TestClassifyUnparseableRange(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "n/a", "> 60", "positive"} {
		if got := Classify(12, text); got != VerdictUnclassifiable {
			t.Errorf("Classify(12, %q) = %s, want %s", text, got, VerdictUnclassifiable)
		}
	}
}

func TestClassifyNonFiniteValues(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Classify(v, "12.0-16.0 g/dL"); got != VerdictUnclassifiable {
			t.Errorf("Classify(%v) = %s, want %s", v, got, VerdictUnclassifiable)
		}
	}
}

func TestClassifyExamples(t *testing.T) {
	t.Parallel()

	if got := Classify(15.0, "13.0-18.0 g/dL"); got != VerdictNormal {
		t.Fatalf("hemoglobin 15.0: got %s, want NORMAL", got)
	}

	if got := Classify(3.0, "1.5-8.0 ×10³/μL (40-60%)"); got != VerdictNormal {
		t.Fatalf("neutrophils 3.0: got %s, want NORMAL", got)
	}
}

func TestVerdictHelpers(t *testing.T) {
	t.Parallel()

	if VerdictNormal.IsAbnormal() {
		t.Fatal("NORMAL must not be abnormal")
	}

	for _, v := range []Verdict{VerdictLow, VerdictHigh, VerdictUnclassifiable} {
		if !v.IsAbnormal() {
			t.Errorf("%s should count as abnormal", v)
		}
	}

	if VerdictLow.Color() != "red" || VerdictHigh.Color() != "orange" || VerdictUnclassifiable.Color() != "gray" {
		t.Fatal("unexpected verdict colours")
	}
}
