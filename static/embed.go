/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package static

import "embed"

// Static contains the stylesheet served at the site root.
//
//go:embed *.css
var Static embed.FS
