// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
	"time"
)

func testContext() context.Context {
	return context.Background()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func visit(patientID, name string, testDate time.Time, results ...ResultRecord) *VisitRecord {
	v := &VisitRecord{
		PatientID:     patientID,
		PatientName:   name,
		Age:           45,
		Gender:        "Male",
		TestDate:      testDate,
		Results:       results,
		Abnormalities: []Abnormality{},
		CreatedAt:     testDate.Add(time.Hour),
	}

	for _, r := range results {
		if r.Status != "NORMAL" {
			v.Abnormalities = append(v.Abnormalities, Abnormality{
				Parameter:      r.Test,
				Value:          r.Value,
				Status:         r.Status,
				ReferenceRange: r.ReferenceRange,
			})
		}
	}

	return v
}

func mustSave(t *testing.T, store VisitStore, v *VisitRecord) {
	t.Helper()

	if err := store.Save(testContext(), v); err != nil {
		t.Fatalf("failed to save visit %s: %v", v.PatientID, err)
	}
}

// exerciseStore checks the behaviour every available backend shares.
func exerciseStore(t *testing.T, store VisitStore) {
	t.Helper()
	ctx := testContext()

	if !store.Available() {
		t.Fatal("expected store to be available")
	}

	alt := func(value, status string) ResultRecord {
		return ResultRecord{Test: "ALT (SGPT)", Value: value, ReferenceRange: "10-40 U/L", Status: status}
	}

	mustSave(t, store, visit("LFT-20250301-JOHN45MAAAA", "John Smith", day(2025, 3, 1), alt("20.0 U/L", "NORMAL")))
	mustSave(t, store, visit("LFT-20250301-JOHN45MAAAA", "John Smith", day(2025, 1, 10), alt("18.0 U/L", "NORMAL")))
	mustSave(t, store, visit("LFT-20250301-JOHN45MAAAA", "John Smith", day(2025, 6, 1), alt("44.0 U/L", "HIGH")))
	mustSave(t, store, visit("LFT-20250402-MARY30FBBBB", "Mary_Jones", day(2025, 4, 2), alt("12.0 U/L", "NORMAL")))

	history, err := store.History(ctx, "LFT-20250301-JOHN45MAAAA")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}

	if len(history) != 3 {
		t.Fatalf("expected 3 visits, got %d", len(history))
	}

	for i := 1; i < len(history); i++ {
		if history[i].TestDate.Before(history[i-1].TestDate) {
			t.Fatalf("history not ordered by test date: %v before %v", history[i].TestDate, history[i-1].TestDate)
		}
	}

	last := history[2]
	if len(last.Results) != 1 || last.Results[0].ReferenceRange != "10-40 U/L" || last.Results[0].Value != "44.0 U/L" {
		t.Fatalf("unexpected stored results: %+v", last.Results)
	}

	if len(last.Abnormalities) != 1 || last.Abnormalities[0].Status != "HIGH" {
		t.Fatalf("unexpected stored abnormalities: %+v", last.Abnormalities)
	}

	none, err := store.History(ctx, "LFT-UNKNOWN")
	if err != nil {
		t.Fatalf("History(unknown) failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no visits for unknown patient, got %d", len(none))
	}

	all, err := store.Search(ctx, "")
	if err != nil {
		t.Fatalf("Search(\"\") failed: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("expected one entry per patient, got %d", len(all))
	}

	if all[0].PatientID != "LFT-20250301-JOHN45MAAAA" || !all[0].TestDate.Equal(day(2025, 6, 1)) {
		t.Fatalf("expected John's latest visit first, got %s on %v", all[0].PatientID, all[0].TestDate)
	}

	byName, err := store.Search(ctx, "mary_")
	if err != nil {
		t.Fatalf("Search(mary_) failed: %v", err)
	}
	if len(byName) != 1 || byName[0].PatientName != "Mary_Jones" {
		t.Fatalf("unexpected search result by name: %+v", byName)
	}

	byID, err := store.Search(ctx, "john45m")
	if err != nil {
		t.Fatalf("Search(john45m) failed: %v", err)
	}
	if len(byID) != 1 || byID[0].PatientID != "LFT-20250301-JOHN45MAAAA" {
		t.Fatalf("unexpected search result by id: %+v", byID)
	}

	noMatch, err := store.Search(ctx, "nobody")
	if err != nil {
		t.Fatalf("Search(nobody) failed: %v", err)
	}
	if len(noMatch) != 0 {
		t.Fatalf("expected no matches, got %d", len(noMatch))
	}

	exists, err := store.PatientExists(ctx, "LFT-20250402-MARY30FBBBB")
	if err != nil || !exists {
		t.Fatalf("PatientExists(Mary) = %v, %v", exists, err)
	}

	exists, err = store.PatientExists(ctx, "LFT-20250402-MARY30FZZZZ")
	if err != nil || exists {
		t.Fatalf("PatientExists(unknown) = %v, %v", exists, err)
	}
}
