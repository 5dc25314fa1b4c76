package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/services"
)

const recentProjects = 5

// Projects lists practice projects; "projects recent" shows the latest
// activity first.
func (a *App) Projects(ctx context.Context, args []string) error {
	if err := a.projectService.FetchAll(ctx); err != nil {
		return a.fail(ctx, "load projects", err, services.MsgLoadProjects)
	}
	if len(args) > 0 && args[0] == "recent" {
		printProjects(a.out, a.projectService.Recent(recentProjects))
		return nil
	}
	printProjects(a.out, a.projectService.List())
	return nil
}

func (a *App) GenerateProject(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "Course id", "subject")
	if err != nil {
		return a.fail(ctx, "generate project", err, services.MsgGenerateProject)
	}
	p, err := a.projectService.Generate(ctx, id)
	if err != nil {
		return a.fail(ctx, "generate project", err, services.MsgGenerateProject)
	}
	fmt.Fprintf(a.out, "Generated project %d\n", p.ID)
	printProject(a.out, p)
	return nil
}

func (a *App) ProjectStatus(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "Project id", "id")
	if err != nil {
		return a.fail(ctx, "update project", err, services.MsgUpdateProject)
	}

	var status string
	if len(args) > 1 {
		status = args[1]
	} else {
		prompt := fmt.Sprintf("Status (%s)", strings.Join(models.ProjectStatuses, ", "))
		if status, err = getSimpleText(a.reader, prompt, a.out); err != nil {
			return err
		}
	}

	p, err := a.projectService.UpdateStatus(ctx, id, status)
	if err != nil {
		return a.fail(ctx, "update project", err, services.MsgUpdateProject)
	}
	fmt.Fprintf(a.out, "Project %q is now %s\n", p.Title, p.Status)
	return nil
}

func (a *App) DeleteProject(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "Project id", "id")
	if err != nil {
		return a.fail(ctx, "delete project", err, services.MsgDeleteProject)
	}
	if err := a.projectService.Delete(ctx, id); err != nil {
		return a.fail(ctx, "delete project", err, services.MsgDeleteProject)
	}
	fmt.Fprintln(a.out, "Project deleted")
	return nil
}
