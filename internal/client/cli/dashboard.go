package cli

import (
	"context"

	"github.com/edupilot/edupilot/internal/client/dashboard"
)

// Dashboard reloads courses, skills and projects and prints the summary.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	if err := a.subjectService.FetchAll(ctx); err != nil {
		return a.fail(ctx, "dashboard", err, MsgDashboard)
	}
	if err := a.skillService.FetchAll(ctx); err != nil {
		return a.fail(ctx, "dashboard", err, MsgDashboard)
	}
	if err := a.projectService.FetchAll(ctx); err != nil {
		return a.fail(ctx, "dashboard", err, MsgDashboard)
	}

	sum := dashboard.Summarize(a.subjectService.List(), a.skillService.List(), a.projectService.List())
	printDashboard(a.out, sum)
	return nil
}
