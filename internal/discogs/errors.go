package discogs

import (
	"fmt"

	"vinyl-pricer/internal/grade"
)

// NotFoundError is returned when the marketplace answers 404 for a resource.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// UpstreamError covers every other failed call: transport errors, unexpected
// status codes, and bodies that do not have the expected shape.
type UpstreamError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Op
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// GradeNotAvailableError means the marketplace has no suggested price for the
// requested grade of a release.
type GradeNotAvailableError struct {
	ReleaseID int
	Grade     grade.Code
}

func (e *GradeNotAvailableError) Error() string {
	label, ok := grade.Label(e.Grade)
	if !ok {
		label = string(e.Grade)
	}
	return fmt.Sprintf("no price suggestion for a %s copy of release %d", label, e.ReleaseID)
}
