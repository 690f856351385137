/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package narrative produces clinical recommendations for classified lab
// results through an OpenAI-compatible chat completions API.
package narrative

import (
	"context"
	"time"

	"github.com/saisaranya2005/SmartLabAI/lab"
	"github.com/saisaranya2005/SmartLabAI/logging"
	"github.com/saisaranya2005/SmartLabAI/metrics"
)

var logger = logging.Logger(logging.SourceNarrative)

const systemPrompt = "You are a clinical laboratory assistant. Answer in plain text with the requested section headers. Never mention consulting a healthcare professional, this is shown separately in the UI."

// PlaceholderPrefix starts the narrative text used when generation failed.
const PlaceholderPrefix = "Analysis unavailable due to connection error: "

// Request carries the analysed panel and patient context.
type Request struct {
	Panel   lab.Panel
	Gender  string
	Age     int
	Results []lab.Result
}

// Narrative is the generated analysis. When Unavailable is set, Text holds
// the placeholder describing the failure.
type Narrative struct {
	Text        string
	Unavailable bool
}

// Generator produces narratives. Client implements it; handlers depend on
// the interface.
type Generator interface {
	Analyze(ctx context.Context, req Request) Narrative
	StreamAnswer(ctx context.Context, req Request, question string, onChunk func(string) error) error
}

// Analyze requests the ten-section analysis. It never fails; errors turn
// into a placeholder narrative.
func (c *Client) Analyze(ctx context.Context, req Request) Narrative {
	start := time.Now()

	text, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildAnalysisPrompt(req)},
	})
	metrics.RecordNarrative("analysis", err, time.Since(start))

	if err != nil {
		logger.Warn("Narrative generation failed", "panel", req.Panel, "model", c.cfg.Model, "error", err)
		return Narrative{Text: PlaceholderPrefix + err.Error(), Unavailable: true}
	}

	logger.Info("Narrative generated", "panel", req.Panel, "model", c.cfg.Model, "duration", time.Since(start))

	return Narrative{Text: text}
}

// StreamAnswer streams the answer to a free-form question about the results.
func (c *Client) StreamAnswer(ctx context.Context, req Request, question string, onChunk func(string) error) error {
	start := time.Now()

	err := c.stream(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildQuestionPrompt(req, question)},
	}, onChunk)
	metrics.RecordNarrative("question", err, time.Since(start))

	if err != nil {
		logger.Warn("Question answering failed", "panel", req.Panel, "error", err)
	}

	return err
}
