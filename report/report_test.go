// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

func sampleInput() Input {
	return Input{
		Panel:       lab.PanelCBC,
		PatientID:   "CBC-20250301-JOHN45MAB12",
		PatientName: "John Smith",
		Age:         45,
		Gender:      "Male",
		TestDate:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Results: []lab.Result{
			{Parameter: "WBC_Total", RawValue: 7, Unit: "×10³/μL", RangeText: "4.5-11.0 ×10³/μL", Verdict: lab.VerdictNormal},
			{Parameter: "RBC_Count", RawValue: 4.1, Unit: "×10⁶/μL", RangeText: "4.6-6.2 ×10⁶/μL", Verdict: lab.VerdictLow},
			{Parameter: "MPV", RawValue: 12, Unit: "fL", RangeText: "7.5-11.5 fL", Verdict: lab.VerdictHigh},
		},
		Narrative: "**ABNORMAL FINDINGS:**\n- RBC low\n\n## SEVERITY ASSESSMENT:\nRoutine",
		Findings:  "Mild anaemia.",
	}
}

func TestRenderProducesPDF(t *testing.T) {
	t.Parallel()

	for name, mutate := range map[string]func(*Input){
		"minimal":        func(*Input) {},
		"with lab":       func(in *Input) { in.Laboratory = Laboratory{Name: "City Lab", Physician: "Dr. Rao"} },
		"no narrative":   func(in *Input) { in.Narrative = "" },
		"without id":     func(in *Input) { in.PatientID = "" },
		"with physician": func(in *Input) { in.PhysicianComments = "Iron studies advised." },
	} {
		in := sampleInput()
		mutate(&in)

		var buf bytes.Buffer
		if err := Render(&buf, in); err != nil {
			t.Fatalf("%s: Render failed: %v", name, err)
		}

		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
			t.Fatalf("%s: output is not a PDF", name)
		}
	}
}

func TestRenderRequiresName(t *testing.T) {
	t.Parallel()

	in := sampleInput()
	in.PatientName = "  "

	if err := Render(&bytes.Buffer{}, in); !errors.Is(err, errPatientNameRequired) {
		t.Fatalf("expected errPatientNameRequired, got %v", err)
	}
}

func TestFormatNarrative(t *testing.T) {
	t.Parallel()

	lines := FormatNarrative("**ABNORMAL FINDINGS:**\n- Low RBC\n\nIntro text\n• point one\n-point two\n\n### FOLLOW-UP TIMELINE:\n4 weeks")

	var bold, bullets, plain []string
	for _, l := range lines {
		switch {
		case l.Bold:
			bold = append(bold, l.Text)
		case l.Bullet:
			bullets = append(bullets, l.Text)
		case !l.Break:
			plain = append(plain, l.Text)
		}
	}

	if len(bold) != 2 || bold[0] != "ABNORMAL FINDINGS:\n- Low RBC" || bold[1] != "FOLLOW-UP TIMELINE:\n4 weeks" {
		t.Fatalf("unexpected bold sections: %q", bold)
	}

	if len(bullets) != 2 || bullets[0] != "point one" || bullets[1] != "point two" {
		t.Fatalf("unexpected bullets: %q", bullets)
	}

	if len(plain) != 1 || plain[0] != "Intro text" {
		t.Fatalf("unexpected plain lines: %q", plain)
	}
}

func TestFormatNarrativeEmpty(t *testing.T) {
	t.Parallel()

	lines := FormatNarrative("  ")
	if len(lines) != 1 || lines[0].Text != "Comprehensive analysis not available." {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	got := Filename(lab.PanelLFT, " Mary  Ann Jones ", time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC))
	if got != "LFT_Report_Mary_Ann_Jones_20251205.pdf" {
		t.Fatalf("Filename = %q", got)
	}
}
