/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"net/http"

	"github.com/flamego/flamego"

	"github.com/saisaranya2005/SmartLabAI/lab"
	"github.com/saisaranya2005/SmartLabAI/metrics"
)

// Healthz reports process liveness and whether each panel store is
// reachable. An unavailable store does not fail the check.
func (a *App) Healthz(c flamego.Context) {
	stores := make(map[string]bool, len(lab.Panels()))
	for _, p := range lab.Panels() {
		stores[p.Slug()] = a.store(p).Available()
	}

	c.ResponseWriter().Header().Set("Content-Type", "application/json")
	c.ResponseWriter().WriteHeader(http.StatusOK)
	json.NewEncoder(c.ResponseWriter()).Encode(map[string]interface{}{
		"status": "ok",
		"stores": stores,
	})
}

// Metrics serves the Prometheus scrape endpoint.
func Metrics(c flamego.Context) {
	metrics.Handler().ServeHTTP(c.ResponseWriter(), c.Request().Request)
}
