package models

import "fmt"

// ValidationError rejects malformed caller input before any side effects
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NotFoundError signals an unknown resource id (e.g. expired or bogus game id)
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// UpstreamError signals that the LLM search service failed outright:
// missing configuration, timeout, non-2xx, or an unparseable response.
// It never stands in for "search worked but found nothing".
type UpstreamError struct {
	Op    string
	Cause error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// NoMatchesError signals a search that succeeded but produced zero usable jobs
// after normalization, verification, and threshold filtering. Surfaced
// explicitly so an empty result never masquerades as success.
type NoMatchesError struct {
	Stage string
}

func (e *NoMatchesError) Error() string {
	return fmt.Sprintf("no usable job matches after %s", e.Stage)
}
