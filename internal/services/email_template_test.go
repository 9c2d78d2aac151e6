package services

import (
	"strings"
	"testing"

	"github.com/samjsmart/gig-int-garden-api/internal/domain"
)

func TestPaymentAmount(t *testing.T) {
	cases := []struct {
		name     string
		adults   int
		children int
		want     float64
	}{
		{name: "two_adults_one_child", adults: 2, children: 1, want: 60},
		{name: "adults_only", adults: 4, children: 0, want: 100},
		{name: "nobody", adults: 0, children: 0, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PaymentAmount(tc.adults, tc.children, 25, 10)
			if got != tc.want {
				t.Fatalf("PaymentAmount(%d, %d)=%v, want %v", tc.adults, tc.children, got, tc.want)
			}
		})
	}
}

func TestRenderConfirmationEmailSubstitutesEverything(t *testing.T) {
	values := domain.SubmissionValues{
		Name:         "Alex",
		Email:        "a@x.com",
		Adults:       2,
		Children:     1,
		AnythingElse: "vegetarian",
		BellTent:     true,
		DavidMascot:  false,
	}

	html := RenderConfirmationEmail(values, 60)

	if strings.Contains(html, "{{") || strings.Contains(html, "}}") {
		t.Fatalf("rendered email still contains placeholder tokens")
	}
	for _, want := range []string{"Alex", "a@x.com", "vegetarian", "60.00"} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered email missing %q", want)
		}
	}
	if !strings.Contains(html, "<b>Interested in Bell Tent:</b> Yes") {
		t.Fatalf("bell tent flag should render as Yes")
	}
}

func TestRenderConfirmationEmailBooleanNo(t *testing.T) {
	values := domain.SubmissionValues{Name: "Sam", Email: "s@x.com"}
	html := RenderConfirmationEmail(values, 0)
	if !strings.Contains(html, "<b>Interested in Bell Tent:</b> No") {
		t.Fatalf("unticked bell tent should render as No")
	}
}

func TestRenderConfirmationEmailIsPure(t *testing.T) {
	values := domain.SubmissionValues{Name: "Sam", Email: "s@x.com", Adults: 1}
	a := RenderConfirmationEmail(values, 25)
	b := RenderConfirmationEmail(values, 25)
	if a != b {
		t.Fatalf("rendering must be deterministic")
	}
}
