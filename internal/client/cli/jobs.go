package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/edupilot/edupilot/internal/client/export"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/services"
	"github.com/edupilot/edupilot/internal/client/validation"
	"github.com/edupilot/edupilot/internal/filex"
)

// Jobs searches job opportunities. Without a query it searches for the
// profile's career goal.
//
//	jobs [--remote] [--location=<place>] [query...]
func (a *App) Jobs(ctx context.Context, args []string) error {
	q := parseJobQuery(args)

	var (
		jobs []models.Job
		err  error
	)
	if q == (models.JobQuery{}) {
		jobs, err = a.opportunityService.Personalized(ctx, a.session.Snapshot().User)
	} else {
		jobs, err = a.opportunityService.Search(ctx, q)
	}
	if err != nil {
		return a.fail(ctx, "search jobs", err, services.MsgLoadJobs)
	}
	printJobs(a.out, jobs)
	return nil
}

func parseJobQuery(args []string) models.JobQuery {
	var q models.JobQuery
	var terms []string
	for _, arg := range args {
		switch {
		case arg == "--remote":
			remote := true
			q.Remote = &remote
		case strings.HasPrefix(arg, "--location="):
			q.Location = strings.TrimPrefix(arg, "--location=")
		default:
			terms = append(terms, arg)
		}
	}
	q.Search = strings.Join(terms, " ")
	return q
}

// Export writes the last job search or the project list to a timestamped
// spreadsheet in the export directory.
func (a *App) Export(ctx context.Context, args []string) error {
	what, err := a.textArg(args, "Export what (jobs, projects)")
	if err != nil {
		return err
	}

	var (
		rows  int
		write func(path string) error
	)
	switch strings.ToLower(strings.TrimSpace(what)) {
	case "jobs":
		jobs := a.opportunityService.List()
		if len(jobs) == 0 {
			return a.fail(ctx, "export", validation.New("jobs", "Nothing to export. Run 'jobs' first"), MsgExport)
		}
		rows, what = len(jobs), "jobs"
		write = func(path string) error { return export.Jobs(path, jobs) }
	case "projects":
		if err := a.projectService.FetchAll(ctx); err != nil {
			return a.fail(ctx, "export", err, services.MsgLoadProjects)
		}
		projects := a.projectService.List()
		rows, what = len(projects), "projects"
		write = func(path string) error { return export.Projects(path, projects) }
	default:
		return a.fail(ctx, "export", validation.New("target", "Export either jobs or projects"), MsgExport)
	}

	dir, err := filex.EnsureDir(a.config.ExportDir)
	if err != nil {
		return a.fail(ctx, "export", err, MsgExport)
	}
	path := filepath.Join(dir, filex.TimestampedName(what, ".xlsx", a.now()))
	if err := write(path); err != nil {
		return a.fail(ctx, "export", err, MsgExport)
	}
	a.logger.Info(ctx, "exported spreadsheet", "kind", what, "rows", rows, "path", path)
	fmt.Fprintf(a.out, "Exported %d %s to %s\n", rows, what, path)
	return nil
}
