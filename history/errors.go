/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package history

import "errors"

// ErrEmptyHistory is returned when a summary is requested for no visits.
var ErrEmptyHistory = errors.New("patient has no visits")
