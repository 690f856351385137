/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

// Line is one formatted line of narrative text in the report.
type Line struct {
	Text   string
	Bold   bool
	Bullet bool
	Break  bool
}

var narrativeHeaders = []string{
	"ABNORMAL FINDINGS",
	"POSSIBLE CAUSES",
	"RECOMMENDED",
	"DIETARY",
	"ACTIVITY",
	"MONITORING",
	"FOLLOW-UP",
	"SEVERITY",
}

// FormatNarrative turns model output into report lines. Markdown emphasis
// and heading marks are dropped, paragraphs naming a section header are
// bold, and "-" or "•" lines become bullets.
func FormatNarrative(text string) []Line {
	if strings.TrimSpace(text) == "" {
		return []Line{{Text: "Comprehensive analysis not available."}}
	}

	cleaned := strings.NewReplacer("*", "", "#", "", "\r\n", "\n").Replace(text)

	var lines []Line
	for _, section := range strings.Split(cleaned, "\n\n") {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		upper := strings.ToUpper(section)
		if containsAny(upper, narrativeHeaders) {
			lines = append(lines, Line{Break: true}, Line{Text: section, Bold: true})
			continue
		}

		for _, raw := range strings.Split(section, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}

			if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
				line = strings.TrimPrefix(line, "-")
				line = strings.TrimPrefix(line, "•")
				lines = append(lines, Line{Text: strings.TrimSpace(line), Bullet: true})
				continue
			}

			lines = append(lines, Line{Text: line})
		}

		lines = append(lines, Line{Break: true})
	}

	return lines
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}

	return false
}

// Filename returns the download name, e.g. CBC_Report_John_Smith_20250301.pdf.
func Filename(panel lab.Panel, patientName string, testDate time.Time) string {
	name := strings.Join(strings.Fields(patientName), "_")
	return fmt.Sprintf("%s_Report_%s_%s.pdf", panel, name, testDate.Format("20060102"))
}
