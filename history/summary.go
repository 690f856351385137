/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package history derives summaries, trends and comparisons from the stored
// visits of a patient. Everything here is pure and works on records already
// loaded from a db.VisitStore.
package history

import (
	"strconv"
	"strings"
	"time"

	"github.com/saisaranya2005/SmartLabAI/db"
)

// Summary aggregates all visits of one patient. Demographics come from the
// most recent visit.
type Summary struct {
	PatientID          string
	PatientName        string
	Age                int
	Gender             string
	TotalVisits        int
	TotalAbnormalities int
	FirstVisit         time.Time
	LastVisit          time.Time
}

// DaysTracked returns the whole days between the first and last visit.
func (s Summary) DaysTracked() int {
	return int(s.LastVisit.Sub(s.FirstVisit).Hours() / 24)
}

// Summarize aggregates visits. The latest visit is the one with the greatest
// test date; ties go to the record created last.
func Summarize(visits []db.VisitRecord) (Summary, error) {
	if len(visits) == 0 {
		return Summary{}, ErrEmptyHistory
	}

	latest := visits[0]
	summary := Summary{
		FirstVisit: visits[0].TestDate,
		LastVisit:  visits[0].TestDate,
	}

	for _, v := range visits {
		summary.TotalVisits++
		summary.TotalAbnormalities += len(v.Abnormalities)

		if v.TestDate.Before(summary.FirstVisit) {
			summary.FirstVisit = v.TestDate
		}
		if v.TestDate.After(summary.LastVisit) {
			summary.LastVisit = v.TestDate
		}

		if v.TestDate.After(latest.TestDate) ||
			(v.TestDate.Equal(latest.TestDate) && v.CreatedAt.After(latest.CreatedAt)) {
			latest = v
		}
	}

	summary.PatientID = latest.PatientID
	summary.PatientName = latest.PatientName
	summary.Age = latest.Age
	summary.Gender = latest.Gender

	return summary, nil
}

// NumberedVisit is a visit with its 1-based position in chronological order.
type NumberedVisit struct {
	Number int
	db.VisitRecord
}

// NewestFirst numbers visits in the order given, which must be ascending by
// test date, and returns them most recent first.
func NewestFirst(visits []db.VisitRecord) []NumberedVisit {
	out := make([]NumberedVisit, 0, len(visits))
	for i := len(visits) - 1; i >= 0; i-- {
		out = append(out, NumberedVisit{Number: i + 1, VisitRecord: visits[i]})
	}

	return out
}

// LeadingValue parses the numeric value at the start of a stored value text
// such as "15.0 g/dL".
func LeadingValue(text string) (float64, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
