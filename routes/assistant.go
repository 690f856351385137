/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

// AssistantPage shows the narrative of the last analysis split into tabs.
func AssistantPage(s session.Session, t template.Template, data template.Data, def *lab.Definition) {
	data["IsAssistant"] = true

	analysis, ok := loadAnalysis(s, def.Panel)
	if !ok {
		data["NoAnalysis"] = true
		t.HTML(http.StatusOK, "assistant")
		return
	}

	data["Analysis"] = analysis
	data["Sections"] = analysis.Sections()

	t.HTML(http.StatusOK, "assistant")
}

// AskAssistant streams the answer to a free-form question about the last
// analysis as server-sent events.
func (a *App) AskAssistant(c flamego.Context, s session.Session, def *lab.Definition) {
	ctx := c.Request().Context()

	w := c.ResponseWriter()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	sendEvent := func(event, data string) {
		if event != "" {
			w.Write([]byte("event: " + event + "\n"))
		}
		escapedData := strings.ReplaceAll(data, "\n", "\ndata: ")
		w.Write([]byte("data: " + escapedData + "\n\n"))
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}

	sendError := func(message string) {
		sendEvent("error", message)
	}

	analysis, ok := loadAnalysis(s, def.Panel)
	if !ok {
		logger.Warn("Question without analysis", "panel", def.Panel, "error", errNoAnalysis)
		sendError("Please analyze your results first")
		return
	}

	question := strings.TrimSpace(c.Request().FormValue("question"))
	if question == "" {
		sendError(errQuestionRequired.Error())
		return
	}

	err := a.Narrative.StreamAnswer(ctx, analysis.Request(), question, func(chunk string) error {
		sendEvent("chunk", chunk)
		return nil
	})
	if err != nil {
		logger.Error("Error answering question", "panel", def.Panel, "session", analysis.ID, "error", err)
		sendError("Unable to process question: " + err.Error())
		return
	}

	sendEvent("done", "")
}
