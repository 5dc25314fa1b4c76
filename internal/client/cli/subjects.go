package cli

import (
	"context"
	"fmt"

	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/services"
	"github.com/edupilot/edupilot/internal/client/validation"
)

// Subjects lists the courses, or shows one course with its concepts.
func (a *App) Subjects(ctx context.Context, args []string) error {
	if err := a.subjectService.FetchAll(ctx); err != nil {
		return a.fail(ctx, "load subjects", err, services.MsgLoadSubjects)
	}
	if len(args) == 0 {
		printSubjects(a.out, a.subjectService.List(), a.subjectService.Progress)
		return nil
	}

	id, err := parseID("id", args[0])
	if err != nil {
		return a.fail(ctx, "show subject", err, services.MsgLoadSubjects)
	}
	subj, ok := a.subjectService.Get(id)
	if !ok {
		return a.fail(ctx, "show subject", noSubject(id), services.MsgLoadSubjects)
	}
	p, _ := a.subjectService.Progress(id)
	printSubject(a.out, subj, p)
	return nil
}

func (a *App) AddSubject(ctx context.Context, args []string) error {
	name, err := a.textArg(args, "Course name")
	if err != nil {
		return err
	}
	subj, err := a.subjectService.Add(ctx, name)
	if err != nil {
		return a.fail(ctx, "add subject", err, services.MsgAddSubject)
	}
	fmt.Fprintf(a.out, "Added course %q (id %d, %d concepts)\n", subj.Name, subj.ID, len(subj.Concepts))
	return nil
}

func (a *App) DeleteSubject(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "Course id", "id")
	if err != nil {
		return a.fail(ctx, "delete subject", err, services.MsgDeleteSubject)
	}
	if err := a.subjectService.Delete(ctx, id); err != nil {
		return a.fail(ctx, "delete subject", err, services.MsgDeleteSubject)
	}
	fmt.Fprintln(a.out, "Course deleted")
	return nil
}

// Toggle flips a concept between learned and not learned.
func (a *App) Toggle(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "Course id", "id")
	if err != nil {
		return a.fail(ctx, "toggle concept", err, services.MsgToggleConcept)
	}
	if _, err := a.subject(ctx, id); err != nil {
		return a.fail(ctx, "toggle concept", err, services.MsgToggleConcept)
	}
	cid, err := a.idArg(args, 1, "Concept id", "concept")
	if err != nil {
		return a.fail(ctx, "toggle concept", err, services.MsgToggleConcept)
	}

	subj, err := a.subjectService.ToggleConcept(ctx, id, cid)
	if err != nil {
		return a.fail(ctx, "toggle concept", err, services.MsgToggleConcept)
	}

	state := "not learned"
	name := ""
	if i := subj.ConceptIndex(cid); i >= 0 {
		name = subj.Concepts[i].Name
		if subj.Concepts[i].Learned {
			state = "learned"
		}
	}
	p, _ := a.subjectService.Progress(id)
	fmt.Fprintf(a.out, "%q marked as %s. Progress: %s\n", name, state, pct(p))
	return nil
}

// Task shows the course project task, generating it on first use.
func (a *App) Task(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "Course id", "id")
	if err != nil {
		return a.fail(ctx, "generate task", err, services.MsgGenerateTask)
	}
	if _, err := a.subject(ctx, id); err != nil {
		return a.fail(ctx, "generate task", err, services.MsgGenerateTask)
	}
	task, err := a.subjectService.GenerateTask(ctx, id)
	if err != nil {
		return a.fail(ctx, "generate task", err, services.MsgGenerateTask)
	}
	fmt.Fprintf(a.out, "Project task:\n  %s\n", task)
	return nil
}

// Submit uploads the documentation for a course's project task.
func (a *App) Submit(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "Course id", "id")
	if err != nil {
		return a.fail(ctx, "submit project", err, services.MsgSubmitProject)
	}
	subj, err := a.subject(ctx, id)
	if err != nil {
		return a.fail(ctx, "submit project", err, services.MsgSubmitProject)
	}

	sub := models.ProjectSubmission{SubjectID: id, Task: subj.GeneratedTask}
	if sub.GithubLink, err = getSimpleText(a.reader, "GitHub link (optional)", a.out); err != nil {
		return err
	}
	if sub.DocumentationPath, err = getSimpleText(a.reader, "Documentation file path", a.out); err != nil {
		return err
	}

	if err := a.subjectService.SubmitProject(ctx, sub); err != nil {
		return a.fail(ctx, "submit project", err, services.MsgSubmitProject)
	}
	p, _ := a.subjectService.Progress(id)
	fmt.Fprintf(a.out, "Project submitted. Course progress: %s\n", pct(p))
	return nil
}

// subject returns a course from the local list, loading the list on a miss.
func (a *App) subject(ctx context.Context, id int64) (models.Subject, error) {
	if s, ok := a.subjectService.Get(id); ok {
		return s, nil
	}
	if err := a.subjectService.FetchAll(ctx); err != nil {
		return models.Subject{}, err
	}
	if s, ok := a.subjectService.Get(id); ok {
		return s, nil
	}
	return models.Subject{}, noSubject(id)
}

func noSubject(id int64) error {
	return validation.New("id", fmt.Sprintf("No course with id %d", id))
}
