/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/template"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

// CSRFInjector automatically injects CSRF token into template data for all routes
func CSRFInjector() flamego.Handler {
	return func(x csrf.CSRF, data template.Data) {
		data["csrf_token"] = x.Token()
	}
}

// NoCacheHeaders disables caching for pages that carry patient data.
func NoCacheHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")

		if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
			header.Set("Cache-Control", "no-store, max-age=0")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "0")
		}

		c.Next()
	}
}

// PanelContext resolves the {panel} route parameter and maps the panel
// definition for the handlers behind it. Unknown panels get a 404.
func PanelContext(c flamego.Context, data template.Data) {
	panel, err := lab.ParsePanel(c.Param("panel"))
	if err != nil {
		http.NotFound(c.ResponseWriter(), c.Request().Request)
		return
	}

	def, err := lab.Lookup(panel)
	if err != nil {
		http.NotFound(c.ResponseWriter(), c.Request().Request)
		return
	}

	data["Definition"] = def
	data["PanelSlug"] = panel.Slug()
	c.Map(def)
}
