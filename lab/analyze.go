/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"math"
	"strconv"
	"strings"
)

// Result is one classified lab value.
type Result struct {
	Parameter string
	RawValue  float64
	Unit      string
	RangeText string
	Verdict   Verdict
}

// Name returns the display name of the parameter.
func (r Result) Name() string {
	return strings.ReplaceAll(r.Parameter, "_", " ")
}

// DisplayValue returns the stored value text, e.g. "15.0 g/dL".
func (r Result) DisplayValue() string {
	return FormatValue(r.RawValue, r.Unit)
}

// FormatValue renders a value followed by its unit. Whole numbers keep a
// trailing ".0" so that stored values stay in the format older records use.
func FormatValue(value float64, unit string) string {
	num := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(num, ".") {
		num += ".0"
	}

	return num + " " + unit
}

// Analyze classifies the submitted values of a panel. Results follow the
// panel's parameter order. Values that are zero, negative or not finite are
// treated as not entered, and parameters without a reference range are skipped.
func Analyze(def *Definition, gender string, values map[string]float64) []Result {
	var results []Result

	for _, p := range def.Parameters {
		value, ok := values[p.Key]
		if !ok || value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}

		rangeText, found := def.Table.Lookup(p.Key, gender)
		if !found {
			continue
		}

		results = append(results, Result{
			Parameter: p.Key,
			RawValue:  value,
			Unit:      p.Unit,
			RangeText: rangeText,
			Verdict:   Classify(value, rangeText),
		})
	}

	return results
}

// CountAbnormal returns how many results are not NORMAL.
func CountAbnormal(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Verdict.IsAbnormal() {
			n++
		}
	}

	return n
}

// Abnormal returns the results that are not NORMAL, in order.
func Abnormal(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Verdict.IsAbnormal() {
			out = append(out, r)
		}
	}

	return out
}
