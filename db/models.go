/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

// ResultRecord is one classified lab value as persisted. Field names match
// records written by earlier versions of the analyzers.
type ResultRecord struct {
	Test           string `bson:"Test" json:"Test"`
	Value          string `bson:"Value" json:"Value"`
	ReferenceRange string `bson:"Reference Range" json:"Reference Range"`
	Status         string `bson:"Status" json:"Status"`
}

// Abnormality is a result whose status is not NORMAL.
type Abnormality struct {
	Parameter      string `bson:"parameter" json:"parameter"`
	Value          string `bson:"value" json:"value"`
	Status         string `bson:"status" json:"status"`
	ReferenceRange string `bson:"reference_range" json:"reference_range"`
}

// VisitRecord is the append-only record of one lab visit.
type VisitRecord struct {
	PatientID     string         `bson:"patient_id" json:"patient_id"`
	PatientName   string         `bson:"patient_name" json:"patient_name"`
	Age           int            `bson:"age" json:"age"`
	Gender        string         `bson:"gender" json:"gender"`
	TestDate      time.Time      `bson:"test_date" json:"test_date"`
	Results       []ResultRecord `bson:"results" json:"results"`
	Abnormalities []Abnormality  `bson:"abnormalities" json:"abnormalities"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	IsNewPatient  bool           `bson:"is_new_patient" json:"is_new_patient"`
}

// NewVisitInput holds what the report form collects for a visit.
type NewVisitInput struct {
	PatientID    string
	PatientName  string
	Age          int
	Gender       string
	TestDate     time.Time
	Results      []lab.Result
	IsNewPatient bool
}

// NewVisitRecord converts classified results into a persistable record.
// Abnormalities are derived from the results and CreatedAt is set to now.
func NewVisitRecord(input NewVisitInput, now time.Time) (*VisitRecord, error) {
	if strings.TrimSpace(input.PatientID) == "" {
		return nil, fmt.Errorf("%w: patient id is required", ErrInvalidVisit)
	}

	if strings.TrimSpace(input.PatientName) == "" {
		return nil, fmt.Errorf("%w: patient name is required", ErrInvalidVisit)
	}

	record := &VisitRecord{
		PatientID:     input.PatientID,
		PatientName:   strings.TrimSpace(input.PatientName),
		Age:           input.Age,
		Gender:        input.Gender,
		TestDate:      input.TestDate,
		Results:       make([]ResultRecord, 0, len(input.Results)),
		Abnormalities: []Abnormality{},
		CreatedAt:     now,
		IsNewPatient:  input.IsNewPatient,
	}

	if record.TestDate.IsZero() {
		record.TestDate = now
	}

	for _, r := range input.Results {
		rr := ResultRecord{
			Test:           r.Name(),
			Value:          r.DisplayValue(),
			ReferenceRange: r.RangeText,
			Status:         string(r.Verdict),
		}
		record.Results = append(record.Results, rr)

		if r.Verdict.IsAbnormal() {
			record.Abnormalities = append(record.Abnormalities, Abnormality{
				Parameter:      rr.Test,
				Value:          rr.Value,
				Status:         rr.Status,
				ReferenceRange: rr.ReferenceRange,
			})
		}
	}

	return record, nil
}

// ResultFor returns the stored result whose test name matches parameter
// ignoring case and the difference between spaces and underscores.
func (v *VisitRecord) ResultFor(parameter string) (ResultRecord, bool) {
	want := NormalizeParameter(parameter)
	for _, r := range v.Results {
		if NormalizeParameter(r.Test) == want {
			return r, true
		}
	}

	return ResultRecord{}, false
}

// NormalizeParameter folds case, surrounding whitespace and the
// space/underscore distinction of a parameter name.
func NormalizeParameter(name string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}
