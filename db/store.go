/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

// VisitStore persists visit records of a single panel.
//
// History returns the visits of one patient by ascending test date. Search
// returns the latest visit of every patient whose id or name contains the
// query case-insensitively, most recent first. An empty query matches every
// patient.
type VisitStore interface {
	Available() bool
	Save(ctx context.Context, visit *VisitRecord) error
	History(ctx context.Context, patientID string) ([]VisitRecord, error)
	Search(ctx context.Context, query string) ([]VisitRecord, error)
	PatientExists(ctx context.Context, patientID string) (bool, error)
	Close(ctx context.Context) error
}

// Backend names a VisitStore implementation.
type Backend string

// Supported backends.
const (
	BackendMongo    Backend = "mongo"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

// ParseBackend resolves a backend name from configuration.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendMongo, BackendPostgres, BackendMemory:
		return b, nil
	case "":
		return BackendMongo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Config selects and configures the store backend.
type Config struct {
	Backend     Backend
	MongoURI    string
	DatabaseURL string
}

// Open returns the visit store for a panel. Connection failures are logged
// and degrade to a store that reports itself unavailable, so the rest of the
// application keeps working without persistence.
func Open(ctx context.Context, cfg Config, panel lab.Panel) VisitStore {
	var (
		store VisitStore
		err   error
	)

	switch cfg.Backend {
	case BackendMemory:
		store = NewMemoryStore()
	case BackendPostgres:
		store, err = openPostgres(ctx, cfg.DatabaseURL, panel)
	case BackendMongo, "":
		store, err = OpenMongo(ctx, cfg.MongoURI, panel)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if err != nil {
		logger.Warn("Patient record store unavailable", "panel", panel, "backend", cfg.Backend, "error", err)
		return Unavailable()
	}

	logger.Info("Patient record store ready", "panel", panel, "backend", cfg.Backend)

	return &instrumentedStore{next: store, panel: panel}
}

type unavailableStore struct{}

// Unavailable returns a store with no database behind it. Reads return no
// records and writes fail with ErrStoreUnavailable.
func Unavailable() VisitStore {
	return unavailableStore{}
}

func (unavailableStore) Available() bool { return false }

func (unavailableStore) Save(context.Context, *VisitRecord) error {
	return ErrStoreUnavailable
}

func (unavailableStore) History(context.Context, string) ([]VisitRecord, error) {
	return nil, nil
}

func (unavailableStore) Search(context.Context, string) ([]VisitRecord, error) {
	return nil, nil
}

func (unavailableStore) PatientExists(context.Context, string) (bool, error) {
	return false, nil
}

func (unavailableStore) Close(context.Context) error { return nil }
