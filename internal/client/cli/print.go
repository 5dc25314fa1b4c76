package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/edupilot/edupilot/internal/client/dashboard"
	"github.com/edupilot/edupilot/internal/client/models"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func str(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func num(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func pct(p float64) string {
	return strconv.FormatFloat(p, 'f', 0, 64) + "%"
}

func printProfile(w io.Writer, u *models.UserProfile) {
	tw := table(w)
	fmt.Fprintf(tw, "Name:\t%s\n", u.DisplayName())
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Degree program:\t%s\n", str(u.DegreeProgram))
	fmt.Fprintf(tw, "Year / semester:\t%s / %s\n", num(u.CurrentYear), num(u.CurrentSemester))
	fmt.Fprintf(tw, "Career goal:\t%s\n", str(u.CareerGoal))
	tw.Flush()
}

func printSubjects(w io.Writer, subjects []models.Subject, percent func(id int64) (float64, bool)) {
	if len(subjects) == 0 {
		fmt.Fprintln(w, "No courses yet. Add one with 'addsubject'.")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tCOURSE\tPROGRESS\tCONCEPTS\tSTATUS")
	for _, s := range subjects {
		p, _ := percent(s.ID)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d/%d\t%s\n", s.ID, s.Name, pct(p), s.LearnedCount(), len(s.Concepts), status(s))
	}
	tw.Flush()
}

func status(s models.Subject) string {
	switch {
	case s.IsCompleted():
		return "completed"
	case s.HasGeneratedTask():
		return "project pending"
	default:
		return "in progress"
	}
}

func printSubject(w io.Writer, s models.Subject, p float64) {
	fmt.Fprintf(w, "%s (%s, %s)\n", s.Name, pct(p), status(s))
	if len(s.Concepts) == 0 {
		fmt.Fprintln(w, "  no concepts yet")
	}
	for _, c := range s.Concepts {
		mark := " "
		if c.Learned {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %d  %s\n", mark, c.ID, c.Name)
	}
	if s.HasGeneratedTask() {
		fmt.Fprintf(w, "Project task:\n  %s\n", s.GeneratedTask)
	}
}

func printProjects(w io.Writer, projects []models.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects yet. Generate one with 'genproject'.")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tDONE\tDIFFICULTY\tHOURS")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d%%\t%s\t%s\n",
			p.ID, p.Title, p.Status, p.CompletionPercentage, str(p.DifficultyLevel), num(p.EstimatedHours))
	}
	tw.Flush()
}

func printProject(w io.Writer, p models.Project) {
	fmt.Fprintf(w, "%s [%s]\n", p.Title, p.Status)
	if p.Description != nil {
		fmt.Fprintf(w, "  %s\n", *p.Description)
	}
	if p.ProblemStatement != nil {
		fmt.Fprintf(w, "Problem:\n  %s\n", *p.ProblemStatement)
	}
	printList(w, "Skills", p.Skills())
	printList(w, "Deliverables", p.DeliverableList())
	printList(w, "Evaluation", p.CriteriaList())
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

func printSkills(w io.Writer, categories []string, byCategory map[string][]models.Skill) {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No skills tracked yet. Add one with 'addskill'.")
		return
	}
	tw := table(w)
	for _, cat := range categories {
		fmt.Fprintf(tw, "%s\n", cat)
		for _, s := range byCategory[cat] {
			target := "-"
			if s.TargetLevel != nil {
				target = pct(*s.TargetLevel)
			}
			fmt.Fprintf(tw, "  %d\t%s\t%s\ttarget %s\n", s.ID, s.Name, pct(s.ProficiencyLevel), target)
		}
	}
	tw.Flush()
}

func printRoadmap(w io.Writer, r models.Roadmap) {
	fmt.Fprintf(w, "Roadmap: %d skills over about %d weeks\n", r.TotalSkills, r.EstimatedWeeks)
	for _, item := range r.Roadmap {
		fmt.Fprintf(w, "%s\n", item.Subject)
		for _, s := range item.Skills {
			line := "  - " + s.Name
			if s.TargetLevel != nil {
				line += " (target " + pct(*s.TargetLevel) + ")"
			}
			fmt.Fprintln(w, line)
		}
	}
}

func printCV(w io.Writer, cv models.CV) {
	fmt.Fprintln(w, cv.FullName)
	contact := make([]string, 0, 3)
	for _, s := range []string{cv.Email, cv.Phone, cv.Location} {
		if s != "" {
			contact = append(contact, s)
		}
	}
	if len(contact) > 0 {
		fmt.Fprintln(w, strings.Join(contact, " | "))
	}
	if cv.Summary != "" {
		fmt.Fprintf(w, "Summary:\n  %s\n", cv.Summary)
	}
	if cv.TechnicalSkills != "" {
		fmt.Fprintf(w, "Technical skills:\n  %s\n", cv.TechnicalSkills)
	}
	for _, e := range cv.Education {
		fmt.Fprintf(w, "Education: %s, %s %s\n", e.Institution, e.Degree, e.Field)
	}
	for _, e := range cv.Experience {
		fmt.Fprintf(w, "Experience: %s at %s\n", e.Position, e.Company)
	}
	for _, p := range cv.Projects {
		fmt.Fprintf(w, "Project: %s\n", p.Name)
	}
	if cv.UpdatedAt != nil {
		fmt.Fprintf(w, "Last updated %s\n", cv.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func printJobs(w io.Writer, jobs []models.Job) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No job opportunities found")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ROLE\tCOMPANY\tLOCATION\tTYPE\tPOSTED")
	for _, j := range jobs {
		loc := j.Location
		if j.Remote {
			loc = strings.TrimSpace(loc + " (remote)")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", j.Role, j.CompanyName, loc, j.EmploymentType, j.DatePosted)
	}
	tw.Flush()
}

func printDashboard(w io.Writer, s dashboard.Summary) {
	tw := table(w)
	fmt.Fprintf(tw, "Courses completed:\t%d\n", s.CompletedSubjects)
	fmt.Fprintf(tw, "Courses in progress:\t%d\n", s.InProgressSubjects)
	fmt.Fprintf(tw, "Concepts learned:\t%d\n", s.ConceptsLearned)
	fmt.Fprintf(tw, "Projects:\t%d (%d completed, %d in progress, %d%% completion)\n",
		s.TotalProjects, s.CompletedProjects, s.InProgressProjects, s.CompletionRate)
	fmt.Fprintf(tw, "Skills:\t%d (average %s)\n", s.Skills, pct(s.AverageSkillLevel))
	tw.Flush()

	if len(s.Top) == 0 {
		return
	}
	fmt.Fprintln(w, "Top courses:")
	tw = table(w)
	for _, r := range s.Top {
		fmt.Fprintf(tw, "  %s\t%d learned\t%d remaining\t%d%%\n", r.Name, r.Learned, r.Remaining, r.Percent)
	}
	tw.Flush()
}

func printChat(w io.Writer, msgs []models.ChatMessage) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages yet. Type 'chat <message>' to ask EduBot.")
		return
	}
	for _, m := range msgs {
		printChatMessage(w, m)
	}
}

func printChatMessage(w io.Writer, m models.ChatMessage) {
	who := "EduBot"
	if m.Role == models.ChatRoleUser {
		who = "You"
	}
	fmt.Fprintf(w, "%s: %s\n", who, m.Content)
}
