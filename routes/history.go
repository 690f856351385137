/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/template"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/saisaranya2005/SmartLabAI/db"
	"github.com/saisaranya2005/SmartLabAI/history"
	"github.com/saisaranya2005/SmartLabAI/lab"
)

const recentPatients = 5

// patientRow is the latest visit of a patient with history totals.
type patientRow struct {
	db.VisitRecord
	TotalVisits        int
	TotalAbnormalities int
}

// patientTable is the data of the patients partial.
type patientTable struct {
	Rows      []patientRow
	PanelSlug string
}

type trendChart struct {
	Parameter string
	HTML      htmltemplate.HTML
}

// ========== History Chart Helpers ==========

// generateTrendChart draws one parameter over time with the reference range
// of the latest visit as dashed lines.
func generateTrendChart(parameter string, points []history.Point, rangeText string) (string, error) {
	if len(points) == 0 {
		return "", nil
	}

	xAxis := make([]string, 0, len(points))
	yData := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		xAxis = append(xAxis, p.Date.Format("Jan 2, 2006"))
		yData = append(yData, opts.LineData{Value: p.Value})
	}

	refMin, refMax, rangeErr := lab.ParseRange(rangeText)

	var yAxisMin, yAxisMax interface{}
	if rangeErr == nil {
		dataMin, dataMax := points[0].Value, points[0].Value
		for _, p := range points[1:] {
			dataMin = min(dataMin, p.Value)
			dataMax = max(dataMax, p.Value)
		}

		padding := (refMax - refMin) * 0.1
		yAxisMin = max(0, min(refMin-padding, dataMin-padding))
		yAxisMax = max(refMax+padding, dataMax+padding)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    parameter + " Trend",
			Subtitle: rangeText,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: parameter,
			Min:  yAxisMin,
			Max:  yAxisMax,
		}),
	)

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			ShowSymbol: opts.Bool(true),
		}),
		charts.WithMarkPointNameTypeItemOpts(
			opts.MarkPointNameTypeItem{Name: "Max", Type: "max"},
			opts.MarkPointNameTypeItem{Name: "Min", Type: "min"},
		),
	}

	if rangeErr == nil {
		markLineItems := []interface{}{
			opts.MarkLineNameYAxisItem{Name: "Normal Min", YAxis: refMin},
			opts.MarkLineNameYAxisItem{Name: "Normal Max", YAxis: refMax},
		}

		seriesOpts = append(seriesOpts, func(s *charts.SingleSeries) {
			s.MarkLines = &opts.MarkLines{
				Data: markLineItems,
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
		})
	}

	line.SetXAxis(xAxis).
		AddSeries(parameter, yData).
		SetSeriesOptions(seriesOpts...)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// generateFrequencyChart draws a horizontal bar per abnormal parameter.
func generateFrequencyChart(freq []history.Frequency) (string, error) {
	if len(freq) == 0 {
		return "", nil
	}

	names := make([]string, 0, len(freq))
	counts := make([]opts.BarData, 0, len(freq))
	for i := len(freq) - 1; i >= 0; i-- {
		names = append(names, freq[i].Parameter)
		counts = append(counts, opts.BarData{Value: freq[i].Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Abnormality Frequency",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
	)

	bar.SetXAxis(names).
		AddSeries("Abnormal results", counts).
		XYReversal()

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// latestRange returns the reference range stored for a parameter on the
// most recent visit that measured it.
func latestRange(visits []db.VisitRecord, parameter string) string {
	for i := len(visits) - 1; i >= 0; i-- {
		if r, ok := visits[i].ResultFor(parameter); ok {
			return r.ReferenceRange
		}
	}

	return ""
}

// parseVisitIndex reads a 1-based visit number, defaulting to fallback.
func parseVisitIndex(raw string, visits, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > visits {
		return 0, fmt.Errorf("%w: %q", errInvalidVisitIndex, raw)
	}

	return n, nil
}

// ========== History Handlers ==========

func (a *App) patientRows(c flamego.Context, store db.VisitStore, latest []db.VisitRecord) []patientRow {
	rows := make([]patientRow, 0, len(latest))
	for _, v := range latest {
		row := patientRow{VisitRecord: v}

		visits, err := store.History(c.Request().Context(), v.PatientID)
		if err != nil {
			logger.Error("Error fetching patient history", "patient_id", v.PatientID, "error", err)
		}

		if summary, err := history.Summarize(visits); err == nil {
			row.TotalVisits = summary.TotalVisits
			row.TotalAbnormalities = summary.TotalAbnormalities
		}

		rows = append(rows, row)
	}

	return rows
}

// PatientHistory searches patients and lists the most recent ones.
func (a *App) PatientHistory(c flamego.Context, t template.Template, data template.Data, def *lab.Definition) {
	data["IsHistory"] = true

	store := a.store(def.Panel)
	if !store.Available() {
		data["StoreUnavailable"] = true
		t.HTML(http.StatusOK, "history")
		return
	}

	ctx := c.Request().Context()

	query := strings.TrimSpace(c.Query("q"))
	if query != "" {
		data["Query"] = query

		found, err := store.Search(ctx, query)
		if err != nil {
			logger.Error("Error searching patients", "panel", def.Panel, "error", err)
			data["Error"] = "Failed to search patients"
		} else {
			data["Results"] = patientTable{Rows: a.patientRows(c, store, found), PanelSlug: def.Panel.Slug()}
			data["Searched"] = true
		}
	}

	recent, err := store.Search(ctx, "")
	if err != nil {
		logger.Error("Error listing recent patients", "panel", def.Panel, "error", err)
		data["Error"] = "Failed to load recent patients"
	} else {
		if len(recent) > recentPatients {
			recent = recent[:recentPatients]
		}
		data["Recent"] = patientTable{Rows: a.patientRows(c, store, recent), PanelSlug: def.Panel.Slug()}
	}

	t.HTML(http.StatusOK, "history")
}

// knownParameters keeps the requested names that appear in the patient's
// records, in request order.
func knownParameters(requested, params []string) []string {
	known := make(map[string]bool, len(params))
	for _, p := range params {
		known[p] = true
	}

	var out []string
	for _, r := range requested {
		if known[r] {
			out = append(out, r)
		}
	}

	return out
}

// ViewPatient shows summary, trends, visits, abnormalities and a comparison
// of two visits for one patient.
func (a *App) ViewPatient(c flamego.Context, t template.Template, data template.Data, def *lab.Definition) {
	patientID := c.Param("patient_id")

	data["IsHistory"] = true
	data["PatientID"] = patientID

	store := a.store(def.Panel)
	if !store.Available() {
		data["StoreUnavailable"] = true
		t.HTML(http.StatusOK, "patient")
		return
	}

	visits, err := store.History(c.Request().Context(), patientID)
	if err != nil {
		logger.Error("Error fetching patient history", "panel", def.Panel, "patient_id", patientID, "error", err)
		data["Error"] = "Failed to load patient history"
		t.HTML(http.StatusOK, "patient")
		return
	}

	summary, err := history.Summarize(visits)
	if err != nil {
		data["NotFound"] = true
		t.HTML(http.StatusNotFound, "patient")
		return
	}

	data["Summary"] = summary
	data["Visits"] = history.NewestFirst(visits)

	params := history.Parameters(visits)
	selected := knownParameters(c.Request().URL.Query()["param"], params)
	if len(selected) == 0 {
		selected = history.DefaultParameters(visits)
	}

	selectedSet := make(map[string]bool, len(selected))
	var trends []trendChart
	for _, param := range selected {
		selectedSet[param] = true

		chart, err := generateTrendChart(param, history.Trend(visits, param), latestRange(visits, param))
		if err != nil {
			logger.Error("Error generating trend chart", "parameter", param, "error", err)
			continue
		}
		if chart != "" {
			trends = append(trends, trendChart{Parameter: param, HTML: htmltemplate.HTML(chart)})
		}
	}

	data["Parameters"] = params
	data["Selected"] = selectedSet
	data["Trends"] = trends

	timeline := history.AbnormalityTimeline(visits)
	data["Timeline"] = timeline
	if len(timeline) > 0 {
		chart, err := generateFrequencyChart(history.AbnormalityFrequency(visits))
		if err != nil {
			logger.Error("Error generating frequency chart", "patient_id", patientID, "error", err)
		} else {
			data["FrequencyChart"] = htmltemplate.HTML(chart)
		}
	}

	if len(visits) >= 2 {
		first, err1 := parseVisitIndex(c.Query("first"), len(visits), 1)
		second, err2 := parseVisitIndex(c.Query("second"), len(visits), len(visits))
		if err1 != nil || err2 != nil {
			data["Error"] = "Invalid visit selection"
			first, second = 1, len(visits)
		}

		data["First"] = first
		data["Second"] = second
		data["FirstVisit"] = visits[first-1]
		data["SecondVisit"] = visits[second-1]
		data["Comparison"] = history.Compare(visits[first-1], visits[second-1])
	}

	t.HTML(http.StatusOK, "patient")
}
