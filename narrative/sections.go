/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package narrative

import "strings"

// Sections groups narrative paragraphs by the assistant tab they belong to.
// A paragraph may appear in several groups.
type Sections struct {
	Clinical      []string
	Vegetarian    string
	NonVegetarian string
	Activity      []string
	Tests         []string
	FollowUp      []string
}

// Paragraphs splits text on blank lines and drops empty paragraphs.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}

	return out
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}

	return false
}

// ParseSections assigns paragraphs to tabs by case-insensitive header
// keywords. The vegetarian plan is the first paragraph mentioning
// VEGETARIAN that is not the non-vegetarian one.
func ParseSections(text string) Sections {
	var s Sections

	for _, p := range Paragraphs(text) {
		upper := strings.ToUpper(p)

		if containsAny(upper, "ABNORMAL FINDINGS", "POSSIBLE CAUSES", "SEVERITY") {
			s.Clinical = append(s.Clinical, p)
		}

		if strings.Contains(upper, "NON-VEGETARIAN") {
			if s.NonVegetarian == "" {
				s.NonVegetarian = p
			}
		} else if strings.Contains(upper, "VEGETARIAN") && s.Vegetarian == "" {
			s.Vegetarian = p
		}

		if containsAny(upper, "LIFESTYLE", "ACTIVITY") {
			s.Activity = append(s.Activity, p)
		}

		if containsAny(upper, "DIAGNOSTIC TESTS", "MONITORING") {
			s.Tests = append(s.Tests, p)
		}

		if containsAny(upper, "FOLLOW-UP", "TIMELINE") {
			s.FollowUp = append(s.FollowUp, p)
		}
	}

	return s
}
