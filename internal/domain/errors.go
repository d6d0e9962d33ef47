package domain

import (
	"errors"
	"fmt"
)

// ErrNoDataForWindow is returned by Window.Select when neither the target date
// nor the fallback yields an in-window sample.
var ErrNoDataForWindow = errors.New("no data for window")

// FailureKind classifies why a source contributed no data.
type FailureKind string

const (
	// KindSourceUnavailable: the source could not be fetched or decoded.
	KindSourceUnavailable FailureKind = "source_unavailable"
	// KindNoDataForWindow: the source answered but nothing fell in the window.
	KindNoDataForWindow FailureKind = "no_data_for_window"
)

// SourceError is the structured error marker carried by a series whose
// source failed. It never aborts the pipeline.
type SourceError struct {
	Kind   FailureKind `json:"kind"`
	Source string      `json:"source"`
	Reason string      `json:"reason"`
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Kind, e.Reason)
}

// Unavailable builds a KindSourceUnavailable marker from a fetch or decode error.
func Unavailable(source string, err error) *SourceError {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return &SourceError{Kind: KindSourceUnavailable, Source: source, Reason: reason}
}

// NoDataForWindow builds a KindNoDataForWindow marker.
func NoDataForWindow(source, targetDate string) *SourceError {
	return &SourceError{
		Kind:   KindNoDataForWindow,
		Source: source,
		Reason: fmt.Sprintf("no data for %s", targetDate),
	}
}
