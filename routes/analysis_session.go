/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/gob"
	"time"

	"github.com/flamego/session"
	"github.com/google/uuid"

	"github.com/saisaranya2005/SmartLabAI/lab"
	"github.com/saisaranya2005/SmartLabAI/narrative"
)

// AnalysisSession is the per-browser state of the last analysis of a panel.
// It is created by an analysis run, replaced by the next one and removed on
// reset.
type AnalysisSession struct {
	ID          string
	Panel       lab.Panel
	Gender      string
	Age         int
	Results     []lab.Result
	Narrative   string
	Unavailable bool
	CreatedAt   time.Time
}

func init() {
	gob.Register(AnalysisSession{})
}

func newAnalysisSession(req narrative.Request, n narrative.Narrative, now time.Time) AnalysisSession {
	return AnalysisSession{
		ID:          uuid.NewString(),
		Panel:       req.Panel,
		Gender:      req.Gender,
		Age:         req.Age,
		Results:     req.Results,
		Narrative:   n.Text,
		Unavailable: n.Unavailable,
		CreatedAt:   now,
	}
}

func analysisKey(panel lab.Panel) string {
	return "analysis_" + panel.Slug()
}

func loadAnalysis(s session.Session, panel lab.Panel) (AnalysisSession, bool) {
	a, ok := s.Get(analysisKey(panel)).(AnalysisSession)
	if !ok || len(a.Results) == 0 {
		return AnalysisSession{}, false
	}

	return a, true
}

func saveAnalysis(s session.Session, a AnalysisSession) {
	s.Set(analysisKey(a.Panel), a)
}

func clearAnalysis(s session.Session, panel lab.Panel) {
	s.Delete(analysisKey(panel))
}

// Request rebuilds the narrative request the session was created from.
func (a AnalysisSession) Request() narrative.Request {
	return narrative.Request{
		Panel:   a.Panel,
		Gender:  a.Gender,
		Age:     a.Age,
		Results: a.Results,
	}
}

func (a AnalysisSession) Total() int { return len(a.Results) }

func (a AnalysisSession) AbnormalCount() int { return lab.CountAbnormal(a.Results) }

func (a AnalysisSession) NormalCount() int { return a.Total() - a.AbnormalCount() }

func (a AnalysisSession) Abnormal() []lab.Result { return lab.Abnormal(a.Results) }

// Sections splits the narrative into the assistant tabs.
func (a AnalysisSession) Sections() narrative.Sections {
	return narrative.ParseSections(a.Narrative)
}

// ValueOf returns the submitted value of a parameter, or 0.
func (a AnalysisSession) ValueOf(key string) float64 {
	for _, r := range a.Results {
		if r.Parameter == key {
			return r.RawValue
		}
	}

	return 0
}
