/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

// PostgresStore keeps visit documents as JSONB rows of the visit_records
// table, scoped to one panel.
type PostgresStore struct {
	panel lab.Panel
}

func openPostgres(ctx context.Context, databaseURL string, panel lab.Panel) (*PostgresStore, error) {
	if err := Init(ctx, databaseURL); err != nil {
		return nil, err
	}

	if err := SyncSchema(ctx, databaseURL); err != nil {
		return nil, err
	}

	return NewPostgresStore(panel), nil
}

// NewPostgresStore returns a store over the initialized pool.
func NewPostgresStore(panel lab.Panel) *PostgresStore {
	return &PostgresStore{panel: panel}
}

// Available reports whether the pool has been initialized.
func (s *PostgresStore) Available() bool {
	return pool != nil
}

// Save inserts the visit as a JSON document.
func (s *PostgresStore) Save(ctx context.Context, visit *VisitRecord) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if visit == nil {
		return ErrInvalidVisit
	}

	document, err := json.Marshal(visit)
	if err != nil {
		return fmt.Errorf("failed to encode visit: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO visit_records (panel, patient_id, patient_name, test_date, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, string(s.panel), visit.PatientID, visit.PatientName, visit.TestDate, document, visit.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert visit: %w", err)
	}

	return nil
}

// History returns the visits of a patient by ascending test date.
func (s *PostgresStore) History(ctx context.Context, patientID string) ([]VisitRecord, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	rows, err := pool.Query(ctx, `
		SELECT document FROM visit_records
		WHERE panel = $1 AND patient_id = $2
		ORDER BY test_date ASC, id ASC
	`, string(s.panel), patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	return scanVisits(rows)
}

// Search returns the latest visit per matching patient, most recent first.
func (s *PostgresStore) Search(ctx context.Context, query string) ([]VisitRecord, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"

	rows, err := pool.Query(ctx, `
		SELECT document FROM (
			SELECT DISTINCT ON (patient_id) patient_id, test_date, document
			FROM visit_records
			WHERE panel = $1 AND (patient_id ILIKE $2 OR patient_name ILIKE $2)
			ORDER BY patient_id, test_date DESC, created_at DESC, id DESC
		) latest
		ORDER BY test_date DESC, patient_id ASC
	`, string(s.panel), pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}

	return scanVisits(rows)
}

// PatientExists reports whether any visit carries the id.
func (s *PostgresStore) PatientExists(ctx context.Context, patientID string) (bool, error) {
	if pool == nil {
		return false, ErrDatabaseConnectionNotInitialized
	}

	var exists bool

	err := pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM visit_records WHERE panel = $1 AND patient_id = $2)
	`, string(s.panel), patientID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check patient: %w", err)
	}

	return exists, nil
}

// Close is a no-op. Both panels share the pool, which db.Close releases.
func (s *PostgresStore) Close(context.Context) error {
	return nil
}

func scanVisits(rows pgx.Rows) ([]VisitRecord, error) {
	defer rows.Close()

	var visits []VisitRecord

	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}

		var visit VisitRecord
		if err := json.Unmarshal(document, &visit); err != nil {
			return nil, fmt.Errorf("failed to decode visit: %w", err)
		}

		visits = append(visits, visit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating visits: %w", err)
	}

	return visits, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
