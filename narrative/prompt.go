/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

// Section headers the model is asked to produce, in order.
var Headers = []string{
	"ABNORMAL FINDINGS",
	"POSSIBLE CAUSES",
	"RECOMMENDED DIAGNOSTIC TESTS",
	"LIFESTYLE MODIFICATIONS",
	"DIETARY RECOMMENDATIONS - VEGETARIAN",
	"DIETARY RECOMMENDATIONS - NON-VEGETARIAN",
	"ACTIVITY RECOMMENDATIONS",
	"MONITORING GUIDELINES",
	"FOLLOW-UP TIMELINE",
	"SEVERITY ASSESSMENT",
}

var headerHints = map[string]string{
	"ABNORMAL FINDINGS":                        "List only abnormal values with clinical significance",
	"POSSIBLE CAUSES":                          "Direct medical causes for abnormal findings",
	"RECOMMENDED DIAGNOSTIC TESTS":             "Specific additional tests needed",
	"LIFESTYLE MODIFICATIONS":                  `Direct recommendations without "patient should" language`,
	"DIETARY RECOMMENDATIONS - VEGETARIAN":     "Specific foods and supplements for vegetarians",
	"DIETARY RECOMMENDATIONS - NON-VEGETARIAN": "Specific foods and supplements including meat/fish",
	"ACTIVITY RECOMMENDATIONS":                 "Exercise and activity guidelines",
	"MONITORING GUIDELINES":                    "What to watch and when to retest",
	"FOLLOW-UP TIMELINE":                       "Specific timeframes for follow-up",
	"SEVERITY ASSESSMENT":                      "Urgent, Moderate, or Routine follow-up needed",
}

// resultJSON is the shape results take inside prompts.
type resultJSON struct {
	Test           string `json:"Test"`
	Value          string `json:"Value"`
	ReferenceRange string `json:"Reference Range"`
	Status         string `json:"Status"`
}

func resultsJSON(results []lab.Result) string {
	rows := make([]resultJSON, 0, len(results))
	for _, r := range results {
		rows = append(rows, resultJSON{
			Test:           r.Name(),
			Value:          r.DisplayValue(),
			ReferenceRange: r.RangeText,
			Status:         string(r.Verdict),
		})
	}

	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "[]"
	}

	return string(out)
}

// buildAnalysisPrompt creates the ten-section analysis prompt.
func buildAnalysisPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Analyze %s results for %d-year-old %s patient. ", req.Panel, req.Age, strings.ToLower(req.Gender)))
	sb.WriteString("Provide direct, clinical recommendations without conversational language.\n\n")
	sb.WriteString(fmt.Sprintf("%s RESULTS:\n%s\n\n", req.Panel, resultsJSON(req.Results)))
	sb.WriteString("PROVIDE ANALYSIS IN THIS EXACT FORMAT:\n\n")

	for _, header := range Headers {
		sb.WriteString(fmt.Sprintf("%s:\n[%s]\n\n", header, headerHints[header]))
	}

	sb.WriteString("Provide only factual medical information without conversational phrases.\n")

	return sb.String()
}

// buildQuestionPrompt creates the prompt for a free-form question.
func buildQuestionPrompt(req Request, question string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Based on these %s results: %s\n", req.Panel, resultsJSON(req.Results)))
	sb.WriteString(fmt.Sprintf("Patient: %d years, %s\n\n", req.Age, req.Gender))
	sb.WriteString(fmt.Sprintf("Answer this specific question directly and professionally: %s\n\n", strings.TrimSpace(question)))
	sb.WriteString("Provide direct medical information without conversational language.\n")

	return sb.String()
}
