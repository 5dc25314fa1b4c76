// Package progress derives a subject's 0..100 completion percentage and
// keeps it consistent across concept toggles.
//
// A server-provided progress value is used verbatim whenever present.
// Otherwise the local estimate is 10 points per learned concept plus 50
// when the subject is completed (its documentation was accepted).
package progress

import (
	"errors"

	"github.com/edupilot/edupilot/internal/client/models"
)

const (
	pointsPerConcept   = 10
	documentationBonus = 50
	maxPercent         = 100
)

// ErrToggleLocked is returned for toggles on a subject that already has a
// generated task or is completed.
var ErrToggleLocked = errors.New("concepts are locked for this subject")

// ErrConceptNotFound is returned when the subject or concept is unknown.
var ErrConceptNotFound = errors.New("concept not found")

// Percent returns the displayed progress for s, clamped to [0, 100].
func Percent(s models.Subject) float64 {
	if s.Progress != nil {
		return clamp(*s.Progress)
	}
	return clamp(LocalPercent(s))
}

// LocalPercent is the unclamped local estimate. It exceeds 50 from
// concepts alone when a subject has more than five learned concepts.
func LocalPercent(s models.Subject) float64 {
	p := float64(s.LearnedCount() * pointsPerConcept)
	if s.IsCompleted() {
		p += documentationBonus
	}
	return p
}

// ConceptComponent is the concept-derived part of the local estimate.
func ConceptComponent(s models.Subject) float64 {
	return float64(s.LearnedCount() * pointsPerConcept)
}

// CanToggle reports whether concepts of s may still be toggled.
func CanToggle(s models.Subject) error {
	if s.HasGeneratedTask() || s.IsCompleted() {
		return ErrToggleLocked
	}
	return nil
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > maxPercent:
		return maxPercent
	default:
		return p
	}
}

// flip returns a copy of s with the concept at idx toggled and the server
// progress cleared, so the local estimate applies until the server opines.
func flip(s models.Subject, idx int) models.Subject {
	out := s.Clone()
	out.Concepts[idx].Learned = !out.Concepts[idx].Learned
	out.Progress = nil
	return out
}
