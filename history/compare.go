/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package history

import (
	"fmt"
	"math"
	"sort"

	"github.com/saisaranya2005/SmartLabAI/db"
)

// SignificantChange is the percentage above which a change counts as a trend.
const SignificantChange = 10.0

// Direction of a parameter between two visits.
type Direction string

// Directions. DirectionNone is used when no change could be computed.
const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
	DirectionNone Direction = ""
)

// Symbol returns the arrow shown for the direction.
func (d Direction) Symbol() string {
	switch d {
	case DirectionUp:
		return "↑"
	case DirectionDown:
		return "↓"
	case DirectionFlat:
		return "→"
	default:
		return "N/A"
	}
}

// Reading is the stored value and status of a parameter at one visit.
type Reading struct {
	Value  string
	Status string
}

// Delta compares one parameter between two visits. A nil reading means the
// parameter was not measured at that visit.
type Delta struct {
	Parameter string
	First     *Reading
	Second    *Reading
	Change    float64
	HasChange bool
	Direction Direction
}

// Significant reports whether the change exceeds SignificantChange percent.
func (d Delta) Significant() bool {
	return d.HasChange && math.Abs(d.Change) > SignificantChange
}

// ChangeText formats the change to one decimal, or "N/A".
func (d Delta) ChangeText() string {
	if !d.HasChange {
		return "N/A"
	}

	return fmt.Sprintf("%.1f%%", d.Change)
}

// Compare lines up the results of two visits by parameter name. The change is
// (second - first) / first * 100 when both values are numeric and the first
// is not zero.
func Compare(first, second db.VisitRecord) []Delta {
	a := readings(first)
	b := readings(second)

	names := make([]string, 0, len(a)+len(b))
	for name := range a {
		names = append(names, name)
	}
	for name := range b {
		if _, ok := a[name]; !ok {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	deltas := make([]Delta, 0, len(names))
	for _, name := range names {
		d := Delta{Parameter: name, Direction: DirectionNone}

		if r, ok := a[name]; ok {
			d.First = &r
		}
		if r, ok := b[name]; ok {
			d.Second = &r
		}

		if d.First != nil && d.Second != nil {
			v1, ok1 := LeadingValue(d.First.Value)
			v2, ok2 := LeadingValue(d.Second.Value)

			if ok1 && ok2 && v1 != 0 {
				d.Change = (v2 - v1) / v1 * 100
				d.HasChange = true
				d.Direction = direction(d.Change)
			}
		}

		deltas = append(deltas, d)
	}

	return deltas
}

func direction(change float64) Direction {
	switch {
	case math.Abs(change) <= SignificantChange:
		return DirectionFlat
	case change > 0:
		return DirectionUp
	default:
		return DirectionDown
	}
}

func readings(v db.VisitRecord) map[string]Reading {
	out := make(map[string]Reading, len(v.Results))
	for _, r := range v.Results {
		out[r.Test] = Reading{Value: r.Value, Status: r.Status}
	}

	return out
}
