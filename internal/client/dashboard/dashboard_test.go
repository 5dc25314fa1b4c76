package dashboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/edupilot/edupilot/internal/client/models"
)

func subject(id int64, name, status string, learned, total int) models.Subject {
	s := models.Subject{ID: id, Name: name, Status: status}
	for i := 0; i < total; i++ {
		s.Concepts = append(s.Concepts, models.Concept{ID: int64(i + 1), Learned: i < learned})
	}
	return s
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil, nil, nil)
	assert.Equal(t, Summary{Top: []SubjectRatio{}}, got)
}

func TestSummarize(t *testing.T) {
	subjects := []models.Subject{
		subject(1, "Algebra", models.SubjectInProgress, 1, 5),
		subject(2, "Biology", models.SubjectCompleted, 5, 5),
		subject(3, "Chemistry", models.SubjectInProgress, 3, 5),
		subject(4, "Drawing", models.SubjectInProgress, 0, 0),
		subject(5, "Economics", models.SubjectInProgress, 3, 5),
	}
	skills := []models.Skill{{ProficiencyLevel: 20}, {ProficiencyLevel: 70}, {ProficiencyLevel: 45}}
	projects := []models.Project{
		{Status: models.ProjectCompleted},
		{Status: models.ProjectInProgress},
		{Status: models.ProjectNotStarted},
	}

	got := Summarize(subjects, skills, projects)

	want := Summary{
		CompletedSubjects:  1,
		InProgressSubjects: 4,
		ConceptsLearned:    12,
		TotalProjects:      3,
		CompletedProjects:  1,
		InProgressProjects: 1,
		CompletionRate:     33,
		Skills:             3,
		AverageSkillLevel:  45,
		Top: []SubjectRatio{
			{ID: 2, Name: "Biology", Learned: 5, Remaining: 0, Percent: 100},
			{ID: 3, Name: "Chemistry", Learned: 3, Remaining: 2, Percent: 60},
			{ID: 5, Name: "Economics", Learned: 3, Remaining: 2, Percent: 60},
			{ID: 1, Name: "Algebra", Learned: 1, Remaining: 4, Percent: 20},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_DoesNotReorderInput(t *testing.T) {
	subjects := []models.Subject{
		subject(1, "Low", models.SubjectInProgress, 0, 5),
		subject(2, "High", models.SubjectInProgress, 5, 5),
	}
	_ = Summarize(subjects, nil, nil)
	assert.Equal(t, int64(1), subjects[0].ID)
}
