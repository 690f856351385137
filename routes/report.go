/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/saisaranya2005/SmartLabAI/db"
	"github.com/saisaranya2005/SmartLabAI/history"
	"github.com/saisaranya2005/SmartLabAI/lab"
	"github.com/saisaranya2005/SmartLabAI/metrics"
	"github.com/saisaranya2005/SmartLabAI/report"
)

const dateLayout = "2006-01-02"

// reportForm is the patient identification submitted with a report.
type reportForm struct {
	Returning         bool   `json:"returning"`
	PatientID         string `json:"patient_id"`
	PatientName       string `json:"patient_name"`
	Age               int    `json:"age"`
	Gender            string `json:"gender"`
	TestDate          string `json:"test_date"`
	Findings          string `json:"findings"`
	PhysicianComments string `json:"physician_comments"`
	Laboratory        report.Laboratory
}

func parseReportForm(form url.Values) reportForm {
	age, _ := strconv.Atoi(strings.TrimSpace(form.Get("age")))

	return reportForm{
		Returning:         form.Get("patient_type") == "returning",
		PatientID:         strings.TrimSpace(form.Get("patient_id")),
		PatientName:       strings.TrimSpace(form.Get("patient_name")),
		Age:               age,
		Gender:            strings.TrimSpace(form.Get("gender")),
		TestDate:          strings.TrimSpace(form.Get("test_date")),
		Findings:          strings.TrimSpace(form.Get("findings")),
		PhysicianComments: strings.TrimSpace(form.Get("physician_comments")),
		Laboratory: report.Laboratory{
			Name:      strings.TrimSpace(form.Get("lab_name")),
			Physician: strings.TrimSpace(form.Get("physician")),
			License:   strings.TrimSpace(form.Get("license")),
			Contact:   strings.TrimSpace(form.Get("contact")),
		},
	}
}

// Validate checks the patient identity. A returning patient's id must be
// known to the store; without a store the entered id is taken as is.
func (f reportForm) Validate(ctx context.Context, store db.VisitStore) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.PatientName, validation.Required.Error("patient name is required")),
		validation.Field(&f.Age, validation.Required, validation.Min(1), validation.Max(120)),
		validation.Field(&f.Gender, validation.Required, validation.In(string(lab.GenderMale), string(lab.GenderFemale))),
		validation.Field(&f.TestDate, validation.Date(dateLayout)),
		validation.Field(&f.PatientID,
			validation.When(f.Returning,
				validation.Required,
				validation.When(store.Available(), validation.By(patientExists(ctx, store))),
			),
		),
	)
}

func patientExists(ctx context.Context, store db.VisitStore) validation.RuleFunc {
	return func(value interface{}) error {
		id, _ := value.(string)
		if id == "" {
			return nil
		}

		exists, err := store.PatientExists(ctx, id)
		if err != nil {
			return validation.NewInternalError(err)
		}

		if !exists {
			return errPatientNotFound
		}

		return nil
	}
}

func (f reportForm) testDate(now time.Time) time.Time {
	if f.TestDate == "" {
		return now
	}

	d, err := time.Parse(dateLayout, f.TestDate)
	if err != nil {
		return now
	}

	return d
}

// ReportForm renders the report form. With ?patient_id= the identity of a
// returning patient is prefilled from their latest visit.
func (a *App) ReportForm(c flamego.Context, s session.Session, t template.Template, data template.Data, def *lab.Definition) {
	analysis, ok := loadAnalysis(s, def.Panel)
	if !ok {
		SetWarningFlash(s, "Please analyze results first")
		c.Redirect("/"+def.Panel.Slug(), http.StatusSeeOther)
		return
	}

	store := a.store(def.Panel)

	data["IsReport"] = true
	data["Analysis"] = analysis
	data["StoreUnavailable"] = !store.Available()
	data["Form"] = reportForm{
		Age:      analysis.Age,
		Gender:   analysis.Gender,
		TestDate: a.now().Format(dateLayout),
	}

	if id := strings.TrimSpace(c.Query("patient_id")); id != "" {
		visits, err := store.History(c.Request().Context(), id)
		if err != nil {
			logger.Error("Error loading patient history", "panel", def.Panel, "patient_id", id, "error", err)
		}

		summary, err := history.Summarize(visits)
		if err != nil {
			data["Error"] = "Patient ID not found. Please check or register as new patient."
			data["Form"] = reportForm{Returning: true, PatientID: id, Age: analysis.Age, Gender: analysis.Gender, TestDate: a.now().Format(dateLayout)}
		} else {
			data["Found"] = true
			data["Form"] = reportForm{
				Returning:   true,
				PatientID:   summary.PatientID,
				PatientName: summary.PatientName,
				Age:         summary.Age,
				Gender:      summary.Gender,
				TestDate:    a.now().Format(dateLayout),
			}
		}
	}

	t.HTML(http.StatusOK, "report")
}

// GenerateReport validates the patient identity, renders the PDF and saves
// the visit. The PDF is returned even when the visit could not be saved.
func (a *App) GenerateReport(c flamego.Context, s session.Session, def *lab.Definition) {
	reportURL := "/" + def.Panel.Slug() + "/report"
	ctx := c.Request().Context()

	analysis, ok := loadAnalysis(s, def.Panel)
	if !ok {
		SetWarningFlash(s, "Please analyze results first")
		c.Redirect("/"+def.Panel.Slug(), http.StatusSeeOther)
		return
	}

	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "Invalid form submission")
		c.Redirect(reportURL, http.StatusSeeOther)
		return
	}

	store := a.store(def.Panel)
	form := parseReportForm(c.Request().Form)

	if err := form.Validate(ctx, store); err != nil {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			logger.Error("Error validating report form", "panel", def.Panel, "error", err)
			SetErrorFlash(s, "Failed to check patient ID")
		} else {
			SetErrorFlash(s, "Invalid patient details: "+err.Error())
		}
		c.Redirect(reportURL, http.StatusSeeOther)
		return
	}

	now := a.now()
	testDate := form.testDate(now)

	patientID := form.PatientID
	if !form.Returning {
		id, err := db.NewPatientID(ctx, store, def.Panel, db.PatientIdentity{
			Name:   form.PatientName,
			Age:    form.Age,
			Gender: form.Gender,
		}, now)
		if err != nil {
			logger.Error("Error generating patient id", "panel", def.Panel, "error", err)
			SetErrorFlash(s, "Failed to generate patient ID")
			c.Redirect(reportURL, http.StatusSeeOther)
			return
		}
		patientID = id
	}

	var buf bytes.Buffer
	err := report.Render(&buf, report.Input{
		Panel:             def.Panel,
		PatientID:         patientID,
		PatientName:       form.PatientName,
		Age:               form.Age,
		Gender:            form.Gender,
		TestDate:          testDate,
		ReportDate:        now,
		Results:           analysis.Results,
		Narrative:         analysis.Narrative,
		Findings:          form.Findings,
		PhysicianComments: form.PhysicianComments,
		Laboratory:        form.Laboratory,
	})
	if err != nil {
		logger.Error("Error rendering report", "panel", def.Panel, "patient_id", patientID, "error", err)
		SetErrorFlash(s, "Error generating report: "+err.Error())
		c.Redirect(reportURL, http.StatusSeeOther)
		return
	}

	metrics.RecordReport(string(def.Panel))

	visit, err := db.NewVisitRecord(db.NewVisitInput{
		PatientID:    patientID,
		PatientName:  form.PatientName,
		Age:          form.Age,
		Gender:       form.Gender,
		TestDate:     testDate,
		Results:      analysis.Results,
		IsNewPatient: !form.Returning,
	}, now)
	if err == nil {
		err = store.Save(ctx, visit)
	}

	switch {
	case errors.Is(err, db.ErrStoreUnavailable):
		SetWarningFlash(s, "Report generated for "+patientID+", but the visit was not saved: database connection not available")
	case err != nil:
		logger.Error("Error saving visit", "panel", def.Panel, "patient_id", patientID, "error", err)
		SetErrorFlash(s, "Report generated for "+patientID+", but saving the visit failed")
	default:
		SetSuccessFlash(s, "Report generated successfully! Patient ID: "+patientID)
	}

	logger.Info("Report generated", "panel", def.Panel, "patient_id", patientID, "session", analysis.ID, "returning", form.Returning)

	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(def.Panel, form.PatientName, testDate)+`"`)
	w.Header().Set("X-Patient-ID", patientID)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
