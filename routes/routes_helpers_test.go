// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/saisaranya2005/SmartLabAI/db"
	"github.com/saisaranya2005/SmartLabAI/lab"
	"github.com/saisaranya2005/SmartLabAI/narrative"
	"github.com/saisaranya2005/SmartLabAI/templates"
)

type testSession struct {
	id    string
	data  map[interface{}]interface{}
	flash interface{}
}

func newTestSession() *testSession {
	return &testSession{
		id:   "test-session",
		data: make(map[interface{}]interface{}),
	}
}

func (s *testSession) ID() string {
	return s.id
}

func (s *testSession) RegenerateID(http.ResponseWriter, *http.Request) error {
	return nil
}

func (s *testSession) Get(key interface{}) interface{} {
	return s.data[key]
}

func (s *testSession) Set(key, val interface{}) {
	s.data[key] = val
}

func (s *testSession) SetFlash(val interface{}) {
	s.flash = val
}

func (s *testSession) Delete(key interface{}) {
	delete(s.data, key)
}

func (s *testSession) Flush() {
	s.data = make(map[interface{}]interface{})
}

func (s *testSession) Encode() ([]byte, error) {
	return nil, nil
}

func (s *testSession) HasChanged() bool {
	return true
}

// fakeGenerator returns canned narratives and streams canned chunks.
type fakeGenerator struct {
	narrative narrative.Narrative
	chunks    []string
	err       error

	questions []string
}

func (g *fakeGenerator) Analyze(context.Context, narrative.Request) narrative.Narrative {
	return g.narrative
}

func (g *fakeGenerator) StreamAnswer(_ context.Context, _ narrative.Request, question string, onChunk func(string) error) error {
	g.questions = append(g.questions, question)
	if g.err != nil {
		return g.err
	}

	for _, chunk := range g.chunks {
		if err := onChunk(chunk); err != nil {
			return err
		}
	}

	return nil
}

var testNow = time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC)

func newTestAppWith(store db.VisitStore, gen narrative.Generator) *App {
	app := NewApp(map[lab.Panel]db.VisitStore{lab.PanelCBC: store}, gen)
	app.Now = func() time.Time { return testNow }

	return app
}

// newTestFlame wires the embedded templates and a fixed session the way the
// server does, leaving route registration to the test.
func newTestFlame(t *testing.T, s session.Session) *flamego.Flame {
	t.Helper()

	fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	f := flamego.New()
	f.Use(template.Templater(template.Options{FileSystem: fs}))
	f.Use(func(c flamego.Context) {
		c.MapTo(s, (*session.Session)(nil))
		c.Next()
	})

	return f
}

func performGET(t *testing.T, f *flamego.Flame, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func performFormPOST(t *testing.T, f *flamego.Flame, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantLocation string) {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	if got := rec.Header().Get("Location"); got != wantLocation {
		t.Fatalf("expected redirect %q, got %q", wantLocation, got)
	}
}

func assertFlash(t *testing.T, s *testSession, wantType FlashType, wantSubstring string) {
	t.Helper()

	msg, ok := s.flash.(FlashMessage)
	if !ok {
		t.Fatalf("expected flash message, got %T", s.flash)
	}

	if msg.Type != wantType || !strings.Contains(msg.Message, wantSubstring) {
		t.Fatalf("unexpected flash message: %#v", msg)
	}
}

func sampleAnalysis() AnalysisSession {
	return AnalysisSession{
		ID:     "analysis-1",
		Panel:  lab.PanelCBC,
		Gender: "Female",
		Age:    34,
		Results: []lab.Result{
			{Parameter: "Hemoglobin", RawValue: 11.2, Unit: "g/dL", RangeText: "12.0-16.0 g/dL", Verdict: lab.VerdictLow},
			{Parameter: "MCV", RawValue: 90, Unit: "fL", RangeText: "80-100 fL", Verdict: lab.VerdictNormal},
		},
		Narrative: "ABNORMAL FINDINGS:\nLow hemoglobin\n\nDIETARY RECOMMENDATIONS - VEGETARIAN:\nLentils\n\nDIETARY RECOMMENDATIONS - NON-VEGETARIAN:\nRed meat",
		CreatedAt: testNow,
	}
}
