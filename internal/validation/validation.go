package validation

import (
	"net/mail"
	"net/url"
	"strconv"
	"strings"

	"github.com/samjsmart/gig-int-garden-api/internal/domain"
)

// Fields maps a form field name to its validation failure message.
type Fields map[string]string

// Parse turns a raw URL-encoded form into typed submission values. All
// field errors are collected in one pass; an empty Fields means the
// submission is valid. Checkbox fields arrive as the literal "on" when
// ticked and are absent otherwise.
func Parse(form url.Values) (domain.SubmissionValues, Fields) {
	fields := Fields{}

	name := strings.TrimSpace(form.Get("name"))
	if name == "" {
		fields["name"] = "name is required"
	}

	email := strings.TrimSpace(form.Get("email"))
	if email == "" {
		fields["email"] = "email is required"
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		fields["email"] = "email is not a valid address"
	}

	adults := parseCount(form, "adults", fields)
	children := parseCount(form, "children", fields)

	// The field must be submitted, but a blank value is fine.
	if !form.Has("anythingElse") {
		fields["anythingElse"] = "anythingElse is required"
	}

	values := domain.SubmissionValues{
		Name:         name,
		Email:        strings.ToLower(email),
		Adults:       adults,
		Children:     children,
		AnythingElse: strings.TrimSpace(form.Get("anythingElse")),
		BellTent:     form.Get("bellTent") == "on",
		DavidMascot:  form.Get("davidMascot") == "on",
	}

	if len(fields) > 0 {
		return domain.SubmissionValues{}, fields
	}
	return values, nil
}

func parseCount(form url.Values, key string, fields Fields) int {
	raw := strings.TrimSpace(form.Get(key))
	if raw == "" {
		fields[key] = key + " is required"
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fields[key] = key + " must be a whole number"
		return 0
	}
	if n < 0 {
		fields[key] = key + " must not be negative"
		return 0
	}
	return n
}
