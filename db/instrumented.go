/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"time"

	"github.com/saisaranya2005/SmartLabAI/lab"
	"github.com/saisaranya2005/SmartLabAI/metrics"
)

// instrumentedStore records Prometheus metrics around another store.
type instrumentedStore struct {
	next  VisitStore
	panel lab.Panel
}

func (s *instrumentedStore) observe(operation string, start time.Time, err error) {
	metrics.RecordStoreOperation(string(s.panel), operation, err, time.Since(start))
	if err != nil {
		logger.Error("Store operation failed", "panel", s.panel, "operation", operation, "error", err)
	}
}

func (s *instrumentedStore) Available() bool { return s.next.Available() }

func (s *instrumentedStore) Save(ctx context.Context, visit *VisitRecord) error {
	start := time.Now()
	err := s.next.Save(ctx, visit)
	s.observe("save", start, err)

	return err
}

func (s *instrumentedStore) History(ctx context.Context, patientID string) ([]VisitRecord, error) {
	start := time.Now()
	visits, err := s.next.History(ctx, patientID)
	s.observe("history", start, err)

	return visits, err
}

func (s *instrumentedStore) Search(ctx context.Context, query string) ([]VisitRecord, error) {
	start := time.Now()
	visits, err := s.next.Search(ctx, query)
	s.observe("search", start, err)

	return visits, err
}

func (s *instrumentedStore) PatientExists(ctx context.Context, patientID string) (bool, error) {
	start := time.Now()
	exists, err := s.next.PatientExists(ctx, patientID)
	s.observe("exists", start, err)

	return exists, err
}

func (s *instrumentedStore) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}
