/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package templates

import "embed"

// Templates contains the page templates and the shared partials under base/.
//
//go:embed *.html base/*.html
var Templates embed.FS
