/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps visit records in process memory. It backs tests and the
// "memory" backend.
type MemoryStore struct {
	mu     sync.RWMutex
	visits []VisitRecord
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Available always reports true.
func (m *MemoryStore) Available() bool { return true }

// Save appends a copy of the visit.
func (m *MemoryStore) Save(_ context.Context, visit *VisitRecord) error {
	if visit == nil {
		return ErrInvalidVisit
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.visits = append(m.visits, cloneVisit(*visit))

	return nil
}

// History returns the visits of a patient by ascending test date.
func (m *MemoryStore) History(_ context.Context, patientID string) ([]VisitRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []VisitRecord
	for _, v := range m.visits {
		if v.PatientID == patientID {
			out = append(out, cloneVisit(v))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TestDate.Before(out[j].TestDate)
	})

	return out, nil
}

// Search returns the latest visit per matching patient, most recent first.
func (m *MemoryStore) Search(_ context.Context, query string) ([]VisitRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))

	latest := make(map[string]VisitRecord)
	for _, v := range m.visits {
		if q != "" &&
			!strings.Contains(strings.ToLower(v.PatientID), q) &&
			!strings.Contains(strings.ToLower(v.PatientName), q) {
			continue
		}

		current, ok := latest[v.PatientID]
		if !ok || v.TestDate.After(current.TestDate) ||
			(v.TestDate.Equal(current.TestDate) && v.CreatedAt.After(current.CreatedAt)) {
			latest[v.PatientID] = v
		}
	}

	out := make([]VisitRecord, 0, len(latest))
	for _, v := range latest {
		out = append(out, cloneVisit(v))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TestDate.Equal(out[j].TestDate) {
			return out[i].PatientID < out[j].PatientID
		}
		return out[i].TestDate.After(out[j].TestDate)
	})

	return out, nil
}

// PatientExists reports whether any visit carries the id.
func (m *MemoryStore) PatientExists(_ context.Context, patientID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, v := range m.visits {
		if v.PatientID == patientID {
			return true, nil
		}
	}

	return false, nil
}

// Close is a no-op.
func (m *MemoryStore) Close(context.Context) error { return nil }

func cloneVisit(v VisitRecord) VisitRecord {
	v.Results = append([]ResultRecord(nil), v.Results...)
	v.Abnormalities = append([]Abnormality(nil), v.Abnormalities...)
	return v
}
