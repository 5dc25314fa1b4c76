package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error

	Subjects(ctx context.Context, args []string) error
	AddSubject(ctx context.Context, args []string) error
	DeleteSubject(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Task(ctx context.Context, args []string) error
	Submit(ctx context.Context, args []string) error

	Projects(ctx context.Context, args []string) error
	GenerateProject(ctx context.Context, args []string) error
	ProjectStatus(ctx context.Context, args []string) error
	DeleteProject(ctx context.Context, args []string) error

	Skills(ctx context.Context, args []string) error
	AddSkill(ctx context.Context, args []string) error
	SkillProgress(ctx context.Context, args []string) error
	Roadmap(ctx context.Context, args []string) error

	CV(ctx context.Context, args []string) error
	GenerateCV(ctx context.Context, args []string) error
	FormatCV(ctx context.Context, args []string) error

	Jobs(ctx context.Context, args []string) error
	Chat(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Dashboard(ctx context.Context, args []string) error
}

type command struct {
	name      string
	usage     string
	anonymous bool
	run       func(execIface, context.Context, []string) error
}

var commands = []command{
	{name: "register", usage: "register                      create an account", anonymous: true, run: execIface.Register},
	{name: "login", usage: "login                         sign in", anonymous: true, run: execIface.Login},
	{name: "logout", usage: "logout                        sign out", run: execIface.Logout},
	{name: "whoami", usage: "whoami                        show your profile", run: execIface.WhoAmI},
	{name: "profile", usage: "profile                       edit your profile", run: execIface.Profile},
	{name: "dashboard", usage: "dashboard                     progress overview", run: execIface.Dashboard},
	{name: "subjects", usage: "subjects [id]                 list courses or show one", run: execIface.Subjects},
	{name: "addsubject", usage: "addsubject [name]             add a course", run: execIface.AddSubject},
	{name: "delsubject", usage: "delsubject <id>               delete a course", run: execIface.DeleteSubject},
	{name: "toggle", usage: "toggle <id> <concept-id>      mark a concept learned or not", run: execIface.Toggle},
	{name: "task", usage: "task <id>                     show or generate the course project task", run: execIface.Task},
	{name: "submit", usage: "submit <id>                   submit the course project", run: execIface.Submit},
	{name: "projects", usage: "projects [recent]             list practice projects", run: execIface.Projects},
	{name: "genproject", usage: "genproject <subject-id>       generate a practice project", run: execIface.GenerateProject},
	{name: "projectstatus", usage: "projectstatus <id> <status>   set a project status", run: execIface.ProjectStatus},
	{name: "delproject", usage: "delproject <id>               delete a project", run: execIface.DeleteProject},
	{name: "skills", usage: "skills                        list skills by category", run: execIface.Skills},
	{name: "addskill", usage: "addskill [name]               track a new skill", run: execIface.AddSkill},
	{name: "skillprogress", usage: "skillprogress <id> <level>    set a skill level (0-100)", run: execIface.SkillProgress},
	{name: "roadmap", usage: "roadmap                       generate a skill roadmap", run: execIface.Roadmap},
	{name: "cv", usage: "cv                            show your CV", run: execIface.CV},
	{name: "cvgen", usage: "cvgen                         generate a CV from your data", run: execIface.GenerateCV},
	{name: "cvformat", usage: "cvformat [format]             render your CV (modern, classic, minimal, ats)", run: execIface.FormatCV},
	{name: "jobs", usage: "jobs [--remote] [--location=X] [query]  search job opportunities", run: execIface.Jobs},
	{name: "chat", usage: "chat [message|clear]          talk to EduBot", run: execIface.Chat},
	{name: "export", usage: "export <jobs|projects>        write a spreadsheet", run: execIface.Export},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printHelp(w io.Writer, loggedIn bool) {
	fmt.Fprintln(w, "Available commands:")
	for _, c := range commands {
		if c.anonymous != loggedIn {
			fmt.Fprintln(w, "  "+c.usage)
		}
	}
	fmt.Fprintln(w, "  help                          show this list")
	fmt.Fprintln(w, "  exit | quit                   leave the program")
}

// runREPL starts a simple read–eval–print loop for the EduPilot CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its arguments, and dispatches to methods on 'a'. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Commands other than register and login need a session; without one the
// user is asked to log in first. Errors returned by command handlers are
// ignored here; handlers report their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "edupilot %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printHelp(w, a.isLoggedIn())
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		cmd, ok := lookup(name)
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if !cmd.anonymous && !a.isLoggedIn() {
			fmt.Fprintln(w, "Please log in first")
			continue
		}
		_ = cmd.run(a, ctx, args)
	}
}
