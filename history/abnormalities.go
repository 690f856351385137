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

// AbnormalityEntry is one abnormal value on the patient timeline.
type AbnormalityEntry struct {
	Date      time.Time
	Parameter string
	Value     string
	Status    string
}

// AbnormalityTimeline flattens the abnormalities of all visits in visit order.
func AbnormalityTimeline(visits []db.VisitRecord) []AbnormalityEntry {
	var out []AbnormalityEntry
	for _, v := range visits {
		for _, a := range v.Abnormalities {
			out = append(out, AbnormalityEntry{
				Date:      v.TestDate,
				Parameter: a.Parameter,
				Value:     a.Value,
				Status:    a.Status,
			})
		}
	}

	return out
}

// Frequency counts how often a parameter was abnormal.
type Frequency struct {
	Parameter string
	Count     int
}

// AbnormalityFrequency returns per-parameter abnormality counts, most
// frequent first and by name for equal counts.
func AbnormalityFrequency(visits []db.VisitRecord) []Frequency {
	counts := make(map[string]int)
	for _, v := range visits {
		for _, a := range v.Abnormalities {
			counts[a.Parameter]++
		}
	}

	out := make([]Frequency, 0, len(counts))
	for name, n := range counts {
		out = append(out, Frequency{Parameter: name, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Parameter < out[j].Parameter
	})

	return out
}
