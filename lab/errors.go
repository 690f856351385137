/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import "errors"

var (
	// ErrUnparseableRange is returned when a range text holds fewer than two numbers.
	ErrUnparseableRange = errors.New("reference range does not contain two numeric bounds")
	// ErrUnknownPanel is returned when a panel code or slug is not recognised.
	ErrUnknownPanel = errors.New("unknown panel")
	// ErrUnknownGender is returned when a gender string is neither male nor female.
	ErrUnknownGender = errors.New("unknown gender")
	// ErrAmbiguousParameter is returned when a parameter key is declared in several categories.
	ErrAmbiguousParameter = errors.New("parameter declared in more than one category")
	// ErrMissingRange is returned when a panel parameter has no range in its category.
	ErrMissingRange = errors.New("parameter has no reference range in its category")
)
