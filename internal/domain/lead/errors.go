package lead

import (
	"errors"
	"strings"
)

var (
	ErrLeadNotFound       = errors.New("lead not found")
	ErrForbidden          = errors.New("no access to this lead")
	ErrInvalidStatus      = errors.New("invalid lead status")
	ErrInvalidLandingPage = errors.New("invalid landing page")
)

// SubmissionError carries the field-level messages of a failed ingestion.
// Either the full lead is created or nothing is; the error names every
// offending field.
type SubmissionError struct {
	Errors []string
}

func (e *SubmissionError) Error() string {
	return strings.Join(e.Errors, "; ")
}
