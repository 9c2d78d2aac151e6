package validation

import (
	"net/url"
	"testing"
)

func validForm() url.Values {
	return url.Values{
		"name":         {"Alex"},
		"adults":       {"2"},
		"children":     {"1"},
		"email":        {"a@x.com"},
		"anythingElse": {"none"},
	}
}

func TestParseValidSubmission(t *testing.T) {
	values, fields := Parse(validForm())
	if len(fields) != 0 {
		t.Fatalf("unexpected field errors: %v", fields)
	}
	if values.Name != "Alex" || values.Email != "a@x.com" {
		t.Fatalf("unexpected values: %+v", values)
	}
	if values.Adults != 2 || values.Children != 1 {
		t.Fatalf("counts not parsed: %+v", values)
	}
	if values.BellTent || values.DavidMascot {
		t.Fatalf("absent checkboxes must default to false: %+v", values)
	}
}

func TestParseCheckboxOn(t *testing.T) {
	form := validForm()
	form.Set("bellTent", "on")
	form.Set("davidMascot", "true")

	values, fields := Parse(form)
	if len(fields) != 0 {
		t.Fatalf("unexpected field errors: %v", fields)
	}
	if !values.BellTent {
		t.Fatalf("bellTent=on should parse true")
	}
	// Anything other than the literal "on" is unticked.
	if values.DavidMascot {
		t.Fatalf("davidMascot=true should parse false")
	}
}

func TestParseLowercasesEmail(t *testing.T) {
	form := validForm()
	form.Set("email", "Alex@X.com")

	values, fields := Parse(form)
	if len(fields) != 0 {
		t.Fatalf("unexpected field errors: %v", fields)
	}
	if values.Email != "alex@x.com" {
		t.Fatalf("email should be lowercased, got %q", values.Email)
	}
}

func TestParseFieldErrors(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(url.Values)
		wantField string
	}{
		{
			name:      "missing_email",
			mutate:    func(f url.Values) { f.Del("email") },
			wantField: "email",
		},
		{
			name:      "malformed_email",
			mutate:    func(f url.Values) { f.Set("email", "not-an-address") },
			wantField: "email",
		},
		{
			name:      "missing_name",
			mutate:    func(f url.Values) { f.Del("name") },
			wantField: "name",
		},
		{
			name:      "missing_adults",
			mutate:    func(f url.Values) { f.Del("adults") },
			wantField: "adults",
		},
		{
			name:      "non_numeric_adults",
			mutate:    func(f url.Values) { f.Set("adults", "two") },
			wantField: "adults",
		},
		{
			name:      "negative_children",
			mutate:    func(f url.Values) { f.Set("children", "-1") },
			wantField: "children",
		},
		{
			name:      "missing_anything_else",
			mutate:    func(f url.Values) { f.Del("anythingElse") },
			wantField: "anythingElse",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(form)
			_, fields := Parse(form)
			if len(fields) == 0 {
				t.Fatalf("expected field errors")
			}
			if _, ok := fields[tc.wantField]; !ok {
				t.Fatalf("expected error on %q, got %v", tc.wantField, fields)
			}
		})
	}
}

func TestParseBlankAnythingElseIsValid(t *testing.T) {
	form := validForm()
	form.Set("anythingElse", "")

	values, fields := Parse(form)
	if len(fields) != 0 {
		t.Fatalf("a blank anythingElse must be accepted: %v", fields)
	}
	if values.AnythingElse != "" {
		t.Fatalf("unexpected anythingElse: %q", values.AnythingElse)
	}
}

func TestParseCollectsAllErrors(t *testing.T) {
	_, fields := Parse(url.Values{})
	for _, f := range []string{"name", "email", "adults", "children", "anythingElse"} {
		if _, ok := fields[f]; !ok {
			t.Fatalf("expected error on %q, got %v", f, fields)
		}
	}
}
