/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"math"
	"regexp"
	"strconv"
)

// Verdict classifies a lab value relative to its reference interval. The
// string values are the ones persisted on visit records.
type Verdict string

// Verdict values.
const (
	VerdictLow            Verdict = "LOW"
	VerdictHigh           Verdict = "HIGH"
	VerdictNormal         Verdict = "NORMAL"
	VerdictUnclassifiable Verdict = "Unable to analyze"
)

// IsAbnormal reports whether the verdict counts as an abnormality.
func (v Verdict) IsAbnormal() bool {
	return v != VerdictNormal
}

// Color returns the colour name used for the verdict in the UI and reports.
func (v Verdict) Color() string {
	switch v {
	case VerdictLow:
		return "red"
	case VerdictHigh:
		return "orange"
	case VerdictNormal:
		return "green"
	default:
		return "gray"
	}
}

var numberPattern = regexp.MustCompile(`\d+\.?\d*`)

// ParseRange extracts the first two numbers of a range text as its lower and
// upper bound. Units and trailing annotations are ignored, so
// "1.5-8.0 ×10³/μL (40-60%)" yields (1.5, 8.0).
func ParseRange(rangeText string) (low, high float64, err error) {
	tokens := numberPattern.FindAllString(rangeText, -1)
	if len(tokens) < 2 {
		return 0, 0, ErrUnparseableRange
	}

	low, err = strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return 0, 0, ErrUnparseableRange
	}

	high, err = strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return 0, 0, ErrUnparseableRange
	}

	return low, high, nil
}

// Classify compares a value against a range text. Bounds are inclusive and
// non-finite values are unclassifiable.
func Classify(value float64, rangeText string) Verdict {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return VerdictUnclassifiable
	}

	low, high, err := ParseRange(rangeText)
	if err != nil {
		return VerdictUnclassifiable
	}

	switch {
	case value < low:
		return VerdictLow
	case value > high:
		return VerdictHigh
	default:
		return VerdictNormal
	}
}
