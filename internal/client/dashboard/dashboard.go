// Package dashboard derives the overview numbers shown by the dashboard
// command from the locally held collections.
package dashboard

import (
	"math"
	"slices"

	"github.com/edupilot/edupilot/internal/client/models"
)

// TopSubjects is how many subjects the concept ranking keeps.
const TopSubjects = 4

// SubjectRatio is one row of the concept ranking.
type SubjectRatio struct {
	ID        int64
	Name      string
	Learned   int
	Remaining int
	Percent   int
}

type Summary struct {
	CompletedSubjects  int
	InProgressSubjects int
	ConceptsLearned    int

	TotalProjects      int
	CompletedProjects  int
	InProgressProjects int
	// CompletionRate is the rounded share of completed projects, 0..100.
	CompletionRate int

	Skills            int
	AverageSkillLevel float64

	Top []SubjectRatio
}

// Summarize computes the dashboard numbers. Inputs are not modified.
func Summarize(subjects []models.Subject, skills []models.Skill, projects []models.Project) Summary {
	var s Summary

	ratios := make([]SubjectRatio, 0, len(subjects))
	for _, subj := range subjects {
		switch subj.Status {
		case models.SubjectCompleted:
			s.CompletedSubjects++
		case models.SubjectInProgress:
			s.InProgressSubjects++
		}

		learned := subj.LearnedCount()
		s.ConceptsLearned += learned

		total := len(subj.Concepts)
		if total == 0 {
			total = 1
		}
		ratios = append(ratios, SubjectRatio{
			ID:        subj.ID,
			Name:      subj.Name,
			Learned:   learned,
			Remaining: len(subj.Concepts) - learned,
			Percent:   int(math.Round(float64(learned) / float64(total) * 100)),
		})
	}

	slices.SortStableFunc(ratios, func(a, b SubjectRatio) int { return b.Percent - a.Percent })
	if len(ratios) > TopSubjects {
		ratios = ratios[:TopSubjects]
	}
	s.Top = ratios

	s.TotalProjects = len(projects)
	for _, p := range projects {
		switch p.Status {
		case models.ProjectCompleted:
			s.CompletedProjects++
		case models.ProjectInProgress:
			s.InProgressProjects++
		}
	}
	if s.TotalProjects > 0 {
		s.CompletionRate = int(math.Round(float64(s.CompletedProjects) / float64(s.TotalProjects) * 100))
	}

	s.Skills = len(skills)
	if len(skills) > 0 {
		var sum float64
		for _, sk := range skills {
			sum += sk.ProficiencyLevel
		}
		s.AverageSkillLevel = sum / float64(len(skills))
	}
	return s
}
