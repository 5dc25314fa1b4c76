package progress

import (
	"context"
	"fmt"

	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/syncer"
	"github.com/edupilot/edupilot/internal/logging"
)

// ToggleFunc performs the server-side toggle.
type ToggleFunc func(ctx context.Context, subjectID, conceptID int64) (models.ToggleResult, error)

// Reconciler applies concept toggles to a subjects collection.
type Reconciler struct {
	subjects *syncer.Collection[int64, models.Subject]
	toggle   ToggleFunc
	logger   logging.Logger
}

func NewReconciler(subjects *syncer.Collection[int64, models.Subject], toggle ToggleFunc, logger logging.Logger) *Reconciler {
	return &Reconciler{subjects: subjects, toggle: toggle, logger: logger}
}

// Toggle flips a concept's learned flag locally before the server answers,
// then lets a server-provided progress supersede the local estimate. When
// the server call fails the flip is undone and the error returned. Locked
// subjects are rejected with ErrToggleLocked and nothing changes.
func (r *Reconciler) Toggle(ctx context.Context, subjectID, conceptID int64) (models.Subject, error) {
	subject, ok := r.subjects.Get(subjectID)
	if !ok {
		return models.Subject{}, fmt.Errorf("subject %d: %w", subjectID, ErrConceptNotFound)
	}
	if err := CanToggle(subject); err != nil {
		return subject, err
	}
	if subject.ConceptIndex(conceptID) < 0 {
		return subject, fmt.Errorf("subject %d concept %d: %w", subjectID, conceptID, ErrConceptNotFound)
	}

	prior := subject.Progress
	seq := r.subjects.Next()
	r.subjects.Mutate(seq, subjectID, func(s models.Subject) models.Subject {
		if idx := s.ConceptIndex(conceptID); idx >= 0 {
			return flip(s, idx)
		}
		return s
	})

	res, err := r.toggle(ctx, subjectID, conceptID)
	if err != nil {
		r.logger.Warn(ctx, "concept toggle failed, reverting", "subject_id", subjectID, "concept_id", conceptID, "error", err)
		r.revert(subjectID, conceptID, seq, prior)
		current, _ := r.subjects.Get(subjectID)
		return current, err
	}

	if res.Progress != nil {
		p := *res.Progress
		applied := r.subjects.Mutate(seq, subjectID, func(s models.Subject) models.Subject {
			out := s.Clone()
			out.Progress = &p
			return out
		})
		if !applied {
			r.logger.Debug(ctx, "dropping superseded toggle progress", "subject_id", subjectID, "progress", p)
		}
	}

	current, _ := r.subjects.Get(subjectID)
	return current, nil
}

// revert undoes the flip of conceptID. The server progress seen before the
// toggle comes back only while the flip made under seq is still the latest
// change to the subject. After a newer change the local estimate applies.
func (r *Reconciler) revert(subjectID, conceptID int64, seq syncer.Seq, prior *float64) {
	restore := r.subjects.Current(subjectID, seq)
	r.subjects.Mutate(r.subjects.Next(), subjectID, func(s models.Subject) models.Subject {
		idx := s.ConceptIndex(conceptID)
		if idx < 0 {
			return s
		}
		out := flip(s, idx)
		if restore && prior != nil {
			p := *prior
			out.Progress = &p
		}
		return out
	})
}
