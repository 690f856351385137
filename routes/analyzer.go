/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/saisaranya2005/SmartLabAI/lab"
	"github.com/saisaranya2005/SmartLabAI/metrics"
	"github.com/saisaranya2005/SmartLabAI/narrative"
)

const (
	defaultGender = lab.GenderMale
	defaultAge    = 30
)

type formField struct {
	Parameter lab.Parameter
	Value     string
}

type formCategory struct {
	Name   string
	Fields []formField
}

func buildFormCategories(def *lab.Definition, analysis AnalysisSession) []formCategory {
	var out []formCategory
	for _, category := range def.Categories() {
		fc := formCategory{Name: category}
		for _, p := range def.ParametersIn(category) {
			field := formField{Parameter: p}
			if v := analysis.ValueOf(p.Key); v > 0 {
				field.Value = strconv.FormatFloat(v, 'f', -1, 64)
			}
			fc.Fields = append(fc.Fields, field)
		}
		out = append(out, fc)
	}

	return out
}

// parseAnalysisForm reads gender, age and parameter values. Empty inputs are
// treated as not entered.
func parseAnalysisForm(def *lab.Definition, form url.Values) (lab.Gender, int, map[string]float64, error) {
	gender, err := lab.ParseGender(form.Get("gender"))
	if err != nil {
		return "", 0, nil, err
	}

	age, err := strconv.Atoi(strings.TrimSpace(form.Get("age")))
	if err != nil || age < 1 || age > 120 {
		return "", 0, nil, errInvalidAge
	}

	values := make(map[string]float64)
	for _, p := range def.Parameters {
		raw := strings.TrimSpace(form.Get(p.FieldName()))
		if raw == "" {
			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return "", 0, nil, fmt.Errorf("%w for %s: %q", errInvalidValue, p.Name(), raw)
		}

		values[p.Key] = v
	}

	return gender, age, values, nil
}

// Home lists the available panels.
func Home(t template.Template, data template.Data) {
	defs := make([]*lab.Definition, 0, len(lab.Panels()))
	for _, p := range lab.Panels() {
		def, err := lab.Lookup(p)
		if err != nil {
			continue
		}
		defs = append(defs, def)
	}

	data["IsHome"] = true
	data["Definitions"] = defs

	t.HTML(http.StatusOK, "home")
}

// PanelForm renders the input form and the last analysis of the panel.
func (a *App) PanelForm(s session.Session, t template.Template, data template.Data, def *lab.Definition) {
	analysis, ok := loadAnalysis(s, def.Panel)

	data["IsAnalyzer"] = true
	data["Categories"] = buildFormCategories(def, analysis)
	data["Gender"] = string(defaultGender)
	data["Age"] = defaultAge

	if ok {
		data["Analysis"] = analysis
		data["Gender"] = analysis.Gender
		data["Age"] = analysis.Age
	}

	data["StoreUnavailable"] = !a.store(def.Panel).Available()

	t.HTML(http.StatusOK, "panel")
}

// Analyze classifies the submitted values, requests the narrative and keeps
// both in the session.
func (a *App) Analyze(c flamego.Context, s session.Session, def *lab.Definition) {
	panelURL := "/" + def.Panel.Slug()

	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "Invalid form submission")
		c.Redirect(panelURL, http.StatusSeeOther)
		return
	}

	gender, age, values, err := parseAnalysisForm(def, c.Request().Form)
	if err != nil {
		SetErrorFlash(s, "Invalid input: "+err.Error())
		c.Redirect(panelURL, http.StatusSeeOther)
		return
	}

	results := lab.Analyze(def, string(gender), values)
	if len(results) == 0 {
		SetInfoFlash(s, fmt.Sprintf("Please enter at least one %s value to analyze.", def.Panel))
		c.Redirect(panelURL, http.StatusSeeOther)
		return
	}

	for _, r := range results {
		metrics.RecordVerdict(string(def.Panel), string(r.Verdict))
	}

	req := narrative.Request{
		Panel:   def.Panel,
		Gender:  string(gender),
		Age:     age,
		Results: results,
	}

	n := a.Narrative.Analyze(c.Request().Context(), req)
	analysis := newAnalysisSession(req, n, a.now())
	saveAnalysis(s, analysis)

	logger.Info("Analysis completed",
		"panel", def.Panel,
		"session", analysis.ID,
		"results", len(results),
		"abnormal", analysis.AbnormalCount(),
		"narrative_unavailable", n.Unavailable,
	)

	if n.Unavailable {
		SetWarningFlash(s, "Results classified, but the detailed analysis is unavailable right now.")
	} else {
		SetSuccessFlash(s, "Analysis complete! Check the assistant page for detailed recommendations.")
	}

	c.Redirect(panelURL, http.StatusSeeOther)
}

// ResetAnalysis discards the analysis of the panel.
func ResetAnalysis(c flamego.Context, s session.Session, def *lab.Definition) {
	clearAnalysis(s, def.Panel)
	SetInfoFlash(s, "Analysis cleared")
	c.Redirect("/"+def.Panel.Slug(), http.StatusSeeOther)
}
