/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package report renders the PDF lab report of one visit.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/saisaranya2005/SmartLabAI/lab"
	"github.com/saisaranya2005/SmartLabAI/logging"
)

var logger = logging.Logger(logging.SourceReport)

const (
	pageMargin  = 20.0
	contentWide = 170.0
	labelWide   = 40.0
	rowHigh     = 7.0
	qrSize      = 28.0
)

const disclaimer = "This report contains laboratory results and AI-generated analysis for educational purposes. " +
	"All abnormal results require clinical correlation and physician interpretation. The AI analysis provides " +
	"general medical information and should not replace professional medical judgment. Consult your healthcare " +
	"provider for personalized medical advice and treatment decisions."

// Laboratory describes the issuing lab. All fields are optional.
type Laboratory struct {
	Name      string
	Physician string
	License   string
	Contact   string
}

// IsZero reports whether no laboratory field is set.
func (l Laboratory) IsZero() bool {
	return l.Name == "" && l.Physician == "" && l.License == "" && l.Contact == ""
}

// Input is everything that goes into a report.
type Input struct {
	Panel             lab.Panel
	PatientID         string
	PatientName       string
	Age               int
	Gender            string
	TestDate          time.Time
	ReportDate        time.Time
	Results           []lab.Result
	Narrative         string
	Findings          string
	PhysicianComments string
	Laboratory        Laboratory
}

type rgb struct{ r, g, b int }

var (
	darkBlue    = rgb{0, 0, 139}
	white       = rgb{255, 255, 255}
	whiteSmoke  = rgb{245, 245, 245}
	lightGrey   = rgb{211, 211, 211}
	mistyRose   = rgb{255, 228, 225}
	lightYellow = rgb{255, 255, 224}
	red         = rgb{255, 0, 0}
	orange      = rgb{255, 165, 0}
	green       = rgb{0, 128, 0}
	gray        = rgb{128, 128, 128}
	black       = rgb{0, 0, 0}
)

// verdictColors returns the row background and status text colour.
func verdictColors(v lab.Verdict) (rgb, rgb) {
	switch v {
	case lab.VerdictLow:
		return mistyRose, red
	case lab.VerdictHigh:
		return lightYellow, orange
	case lab.VerdictNormal:
		return white, green
	default:
		return white, gray
	}
}

// The core fonts only cover cp1252, so symbols outside it are spelled out.
var symbolReplacer = strings.NewReplacer("μ", "µ", "⁶", "^6", "↑", "^", "↓", "v", "→", "->")

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *renderer) fill(c rgb)  { r.pdf.SetFillColor(c.r, c.g, c.b) }
func (r *renderer) color(c rgb) { r.pdf.SetTextColor(c.r, c.g, c.b) }

func (r *renderer) text(s string) string {
	return r.tr(symbolReplacer.Replace(s))
}

func (r *renderer) heading(title string) {
	r.pdf.Ln(4)
	r.pdf.SetFont("Helvetica", "B", 14)
	r.color(darkBlue)
	r.pdf.CellFormat(contentWide, 9, r.text(title), "", 1, "L", false, 0, "")
	r.pdf.Ln(1)
	r.color(black)
}

func (r *renderer) paragraph(s string) {
	r.pdf.SetFont("Helvetica", "", 10)
	r.pdf.MultiCell(contentWide, 5, r.text(s), "", "J", false)
}

func (r *renderer) keyValueTable(rows [][2]string, background rgb) {
	r.pdf.SetFont("Helvetica", "", 10)
	r.fill(background)

	for _, row := range rows {
		r.pdf.CellFormat(labelWide, rowHigh, r.text(row[0]), "1", 0, "L", true, 0, "")
		r.pdf.CellFormat(contentWide-labelWide-qrSize-4, rowHigh, r.text(row[1]), "1", 1, "L", true, 0, "")
	}
}

// Render writes the PDF report to w.
func Render(w io.Writer, in Input) error {
	if strings.TrimSpace(in.PatientName) == "" {
		return errPatientNameRequired
	}

	if in.ReportDate.IsZero() {
		in.ReportDate = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s Report %s", in.Panel, in.PatientID), true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	r.pdf.SetFont("Helvetica", "B", 18)
	r.color(darkBlue)
	r.pdf.CellFormat(contentWide, 12, r.text(fmt.Sprintf("COMPREHENSIVE %s ANALYSIS REPORT", in.Panel)), "", 1, "C", false, 0, "")
	r.pdf.Ln(4)
	r.color(black)

	if !in.Laboratory.IsZero() {
		r.heading("LABORATORY INFORMATION")
		r.keyValueTable([][2]string{
			{"Laboratory:", orNA(in.Laboratory.Name)},
			{"Physician:", orNA(in.Laboratory.Physician)},
			{"License:", orNA(in.Laboratory.License)},
			{"Contact:", orNA(in.Laboratory.Contact)},
		}, lightGrey)
	}

	r.heading("PATIENT INFORMATION")
	top := pdf.GetY()
	r.keyValueTable([][2]string{
		{"Patient ID:", orNA(in.PatientID)},
		{"Patient Name:", in.PatientName},
		{"Age:", fmt.Sprintf("%d years", in.Age)},
		{"Gender:", orNA(in.Gender)},
		{"Test Date:", in.TestDate.Format("2006-01-02")},
		{"Report Date:", in.ReportDate.Format("2006-01-02 15:04:05")},
	}, whiteSmoke)
	r.patientQRCode(in.PatientID, top)

	r.heading("LABORATORY RESULTS")
	r.resultsTable(in.Results)

	if strings.TrimSpace(in.Narrative) != "" {
		r.heading("COMPREHENSIVE CLINICAL ANALYSIS")
		r.narrative(in.Narrative)
	}

	if strings.TrimSpace(in.Findings) != "" {
		r.heading("CLINICAL FINDINGS")
		r.paragraph(in.Findings)
	}

	r.heading("PHYSICIAN INTERPRETATION")
	if strings.TrimSpace(in.PhysicianComments) != "" {
		r.paragraph(in.PhysicianComments)
	} else {
		r.paragraph("Pending physician review.")
	}

	r.heading("MEDICAL DISCLAIMER")
	r.paragraph(disclaimer)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}

	return nil
}

func (r *renderer) patientQRCode(patientID string, top float64) {
	if patientID == "" {
		return
	}

	png, err := qrcode.Encode(patientID, qrcode.Medium, 256)
	if err != nil {
		logger.Warn("Failed to encode patient id QR code", "patient_id", patientID, "error", err)
		return
	}

	name := "qr-" + patientID
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	r.pdf.ImageOptions(name, pageMargin+contentWide-qrSize, top, qrSize, qrSize, false, opts, 0, "")
}

func (r *renderer) resultsTable(results []lab.Result) {
	widths := []float64{50, 38, 52, 30}
	headers := []string{"Parameter", "Result", "Reference Range", "Status"}

	r.pdf.SetFont("Helvetica", "B", 10)
	r.fill(darkBlue)
	r.color(whiteSmoke)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], rowHigh+1, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Helvetica", "", 9)
	for _, res := range results {
		background, statusColor := verdictColors(res.Verdict)
		r.fill(background)
		r.color(black)

		r.pdf.CellFormat(widths[0], rowHigh, r.text(res.Name()), "1", 0, "C", true, 0, "")
		r.pdf.CellFormat(widths[1], rowHigh, r.text(res.DisplayValue()), "1", 0, "C", true, 0, "")
		r.pdf.CellFormat(widths[2], rowHigh, r.text(res.RangeText), "1", 0, "C", true, 0, "")

		r.color(statusColor)
		r.pdf.CellFormat(widths[3], rowHigh, r.text(string(res.Verdict)), "1", 1, "C", true, 0, "")
	}

	r.color(black)
}

func (r *renderer) narrative(text string) {
	for _, line := range FormatNarrative(text) {
		switch {
		case line.Break:
			r.pdf.Ln(2)
		case line.Bold:
			r.pdf.SetFont("Helvetica", "B", 10)
			r.pdf.MultiCell(contentWide, 5, r.text(line.Text), "", "L", false)
		case line.Bullet:
			r.pdf.SetFont("Helvetica", "", 10)
			r.pdf.MultiCell(contentWide, 5, r.text("• "+line.Text), "", "L", false)
		default:
			r.paragraph(line.Text)
		}
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}

	return s
}
