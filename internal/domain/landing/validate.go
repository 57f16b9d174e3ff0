package landing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// emailPattern accepts a simple local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// standardFieldNames are payload keys never treated as dynamic.
var standardFieldNames = map[string]bool{
	"firstName":     true,
	"lastName":      true,
	"email":         true,
	"phone":         true,
	"landingPageId": true,
}

// Submission is a validated, normalized lead payload.
type Submission struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Message   string

	// Dynamic holds every non-standard payload key, keyed by field name.
	// Values are trimmed strings, or []string for multi-select/checkbox.
	Dynamic map[string]interface{}
}

// ParseSubmission validates a raw payload against the page's form contract
// and normalizes it. Validation is schema-directed but not schema-closed:
// declared required fields are enforced, undeclared payload keys are
// accepted and stored. On failure the submission is nil and errs names each
// offending field.
func (p *LandingPage) ParseSubmission(payload map[string]interface{}) (*Submission, []string) {
	var errs []string
	sub := &Submission{Dynamic: map[string]interface{}{}}

	enabled := func(name string) bool { return p.IncludeDefaultFields[name] }

	if enabled("firstName") {
		sub.FirstName = stringify(payload["firstName"])
		if sub.FirstName == "" {
			errs = append(errs, "First name is required")
		}
	}
	if enabled("lastName") {
		sub.LastName = stringify(payload["lastName"])
		if sub.LastName == "" {
			errs = append(errs, "Last name is required")
		}
	}
	if enabled("email") {
		sub.Email = strings.ToLower(stringify(payload["email"]))
		if sub.Email == "" {
			errs = append(errs, "Email is required")
		} else if !emailPattern.MatchString(sub.Email) {
			errs = append(errs, "Email must be a valid email address")
		}
	}
	if enabled("phone") {
		sub.Phone = stringify(payload["phone"])
	}
	if enabled("company") {
		sub.Company = stringify(payload["company"])
	}
	if enabled("message") {
		sub.Message = stringify(payload["message"])
	}

	// Declared required fields must be present and non-blank, named by label.
	for i := range p.FormFields {
		f := &p.FormFields[i]
		if !f.Required || standardFieldNames[f.Name] {
			continue
		}
		if isBlank(payload[f.Name]) {
			errs = append(errs, fmt.Sprintf("%s is required", f.Label))
		}
	}

	if errs != nil {
		return nil, errs
	}

	// Everything outside the standard set passes through, declared or not.
	for key, value := range payload {
		if standardFieldNames[key] || isBlank(value) {
			continue
		}
		sub.Dynamic[key] = normalize(value)
	}

	return sub, nil
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func isBlank(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []interface{}:
		return len(t) == 0
	default:
		return stringify(v) == ""
	}
}

// normalize trims scalar values to strings and keeps arrays as []string.
func normalize(v interface{}) interface{} {
	if arr, ok := v.([]interface{}); ok {
		values := make([]string, 0, len(arr))
		for _, item := range arr {
			if s := stringify(item); s != "" {
				values = append(values, s)
			}
		}
		return values
	}
	return stringify(v)
}
