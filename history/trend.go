/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package history

import (
	"sort"
	"time"

	"github.com/saisaranya2005/SmartLabAI/db"
)

// DefaultTrendParameters is how many parameters the trend view preselects.
const DefaultTrendParameters = 3

// Point is one value of a parameter over time.
type Point struct {
	Date   time.Time
	Value  float64
	Status string
}

// Trend returns the values of a parameter across visits by ascending test
// date. Names match ignoring case and spaces versus underscores. Values whose
// leading token is not a number are skipped.
func Trend(visits []db.VisitRecord, parameter string) []Point {
	var points []Point

	for _, v := range visits {
		result, ok := v.ResultFor(parameter)
		if !ok {
			continue
		}

		value, ok := LeadingValue(result.Value)
		if !ok {
			continue
		}

		status := result.Status
		if status == "" {
			status = "NORMAL"
		}

		points = append(points, Point{Date: v.TestDate, Value: value, Status: status})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points
}

// Parameters returns the distinct result names across visits, sorted.
func Parameters(visits []db.VisitRecord) []string {
	seen := make(map[string]bool)

	var names []string
	for _, v := range visits {
		for _, r := range v.Results {
			if !seen[r.Test] {
				seen[r.Test] = true
				names = append(names, r.Test)
			}
		}
	}

	sort.Strings(names)

	return names
}

// DefaultParameters returns the parameters preselected for trend charts.
func DefaultParameters(visits []db.VisitRecord) []string {
	names := Parameters(visits)
	if len(names) > DefaultTrendParameters {
		names = names[:DefaultTrendParameters]
	}

	return names
}
