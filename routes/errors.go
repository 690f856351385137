/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errNoAnalysis        = errors.New("no analysis in session")
	errQuestionRequired  = errors.New("question is required")
	errInvalidValue      = errors.New("invalid value")
	errInvalidAge        = errors.New("age must be between 1 and 120")
	errPatientNotFound   = errors.New("patient id not found")
	errInvalidVisitIndex = errors.New("invalid visit index")
)
