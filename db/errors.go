/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	// ErrStoreUnavailable is returned by writes when no database is reachable.
	ErrStoreUnavailable = errors.New("patient record store is not available")
	// ErrUnknownBackend is returned for an unsupported store backend name.
	ErrUnknownBackend = errors.New("unknown store backend")
	// ErrDatabaseURLEnvVarNotSet is returned when the postgres backend has no URL.
	ErrDatabaseURLEnvVarNotSet = errors.New("DATABASE_URL is not set")
	// ErrMongoURINotSet is returned when the mongo backend has no URI.
	ErrMongoURINotSet = errors.New("MONGODB_URI is not set")
	// ErrDatabaseNameNotSpecified is returned when DATABASE_URL lacks a database name.
	ErrDatabaseNameNotSpecified = errors.New("database name not specified in DATABASE_URL")
	// ErrDatabaseConnectionNotInitialized is returned when the pool is used before Init.
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
	// ErrPatientIDExhausted is returned when every generated id candidate already exists.
	ErrPatientIDExhausted = errors.New("could not generate an unused patient id")
	// ErrInvalidVisit is returned when a visit record misses required fields.
	ErrInvalidVisit = errors.New("invalid visit record")
)
