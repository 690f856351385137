/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package narrative

import "errors"

var (
	errAPIKeyNotSet     = errors.New("GROQ_API_KEY is not set")
	errUnexpectedStatus = errors.New("unexpected status from chat completions endpoint")
	errAPI              = errors.New("chat completions API error")
	errEmptyResponse    = errors.New("chat completions returned no choices")
)
