package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/samjsmart/gig-int-garden-api/internal/services"
)

type stubIntake struct {
	outcome services.Outcome
	err     error
	form    url.Values
}

func (s *stubIntake) Process(_ context.Context, form url.Values) (services.Outcome, error) {
	s.form = form
	return s.outcome, s.err
}

func postForm(t *testing.T, h *SubmitHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submit", h.Submit)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitRedirectsOnSuccess(t *testing.T) {
	intake := &stubIntake{outcome: services.Outcome{Status: services.StatusCreated, Email: "a@x.com"}}
	h := NewSubmitHandler(intake, SubmitConfig{Mode: ModeRedirect, SiteOrigin: "https://giginthe.garden"})

	w := postForm(t, h, "name=Alex&email=a%40x.com&adults=2&children=1")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://giginthe.garden/contact/success" {
		t.Fatalf("unexpected redirect: %q", loc)
	}
	if intake.form.Get("name") != "Alex" {
		t.Fatalf("form not forwarded: %v", intake.form)
	}
}

func TestSubmitRedirectsOnNoChange(t *testing.T) {
	intake := &stubIntake{outcome: services.Outcome{Status: services.StatusNoChange}}
	h := NewSubmitHandler(intake, SubmitConfig{Mode: ModeRedirect, SiteOrigin: "https://giginthe.garden"})

	w := postForm(t, h, "name=Alex&email=a%40x.com&adults=2&children=1")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://giginthe.garden/contact/no-change" {
		t.Fatalf("unexpected redirect: %q", loc)
	}
}

func TestSubmitOriginHeaderWinsOverConfig(t *testing.T) {
	intake := &stubIntake{outcome: services.Outcome{Status: services.StatusUpdated}}
	h := NewSubmitHandler(intake, SubmitConfig{Mode: ModeRedirect, SiteOrigin: "https://giginthe.garden"})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submit", h.Submit)
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("name=Alex"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://staging.giginthe.garden")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if loc := w.Header().Get("Location"); loc != "https://staging.giginthe.garden/contact/success" {
		t.Fatalf("origin header should win: %q", loc)
	}
}

func TestSubmitJSONMode(t *testing.T) {
	intake := &stubIntake{outcome: services.Outcome{Status: services.StatusCreated}}
	h := NewSubmitHandler(intake, SubmitConfig{Mode: ModeJSON})

	w := postForm(t, h, "name=Alex&email=a%40x.com&adults=2&children=1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "submission received") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestSubmitValidationErrorIsJSON400(t *testing.T) {
	intake := &stubIntake{err: &services.ValidationError{Fields: map[string]string{"email": "email is required"}}}
	h := NewSubmitHandler(intake, SubmitConfig{Mode: ModeRedirect})

	w := postForm(t, h, "name=Alex")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Failed to validate form data") || !strings.Contains(body, "email") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestSubmitStepFailureIs500WithStep(t *testing.T) {
	intake := &stubIntake{err: &services.StepError{Step: services.StepMirror, Err: stubStepErr{}}}
	h := NewSubmitHandler(intake, SubmitConfig{Mode: ModeRedirect})

	w := postForm(t, h, "name=Alex&email=a%40x.com&adults=2&children=1")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "mirror") {
		t.Fatalf("response should name the failed step: %s", w.Body.String())
	}
}

type stubStepErr struct{}

func (stubStepErr) Error() string { return "sheet unavailable" }
