package apitest

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edupilot/edupilot/internal/client/models"
)

const conceptsPerSubject = 5

type academicAPI struct {
	s *Server
}

func registerAcademicAPI(g *echo.Group, s *Server) {
	a := academicAPI{s: s}

	g.GET("/subjects", a.subjectList)
	g.POST("/subjects", a.subjectCreate)
	g.POST("/subjects/submit-project", a.submitProject)
	g.DELETE("/subjects/:id", a.subjectDestroy)
	g.POST("/subjects/:id/concepts", a.generateConcepts)
	g.PUT("/subjects/:id/concepts/:cid/toggle", a.toggleConcept)
	g.POST("/subjects/:id/generate-task", a.generateTask)

	g.GET("/skills", a.skillList)
	g.POST("/skills", a.skillCreate)
	g.PUT("/skills/:id/progress", a.skillProgress)
	g.GET("/roadmap", a.roadmap)
}

// subjectIndexLocked returns the index of the user's subject id, or -1.
func (s *Server) subjectIndexLocked(uid, id int64) int {
	for i, subj := range s.subjects[uid] {
		if subj.ID == id {
			return i
		}
	}
	return -1
}

func (a academicAPI) subjectList(c echo.Context) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	out := append([]models.Subject{}, a.s.subjects[userID(c)]...)
	return c.JSON(http.StatusOK, out)
}

func (a academicAPI) subjectCreate(c echo.Context) error {
	var req models.SubjectCreate
	if err := c.Bind(&req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Name) == "" {
		return validationError("name", "field required")
	}

	uid := userID(c)
	a.s.mu.Lock()
	for _, subj := range a.s.subjects[uid] {
		if strings.EqualFold(subj.Name, req.Name) {
			a.s.mu.Unlock()
			return echo.NewHTTPError(http.StatusBadRequest, "Subject already exists")
		}
	}
	a.s.mu.Unlock()

	sem := req.Semester
	subj := a.s.SeedSubject(models.UserProfile{ID: uid}, models.Subject{
		Name:        req.Name,
		Code:        &req.Code,
		Semester:    &sem,
		Year:        req.Year,
		Credits:     req.Credits,
		Description: req.Description,
	})
	return c.JSON(http.StatusCreated, subj)
}

func (a academicAPI) subjectDestroy(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	uid := userID(c)

	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	i := a.s.subjectIndexLocked(uid, id)
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
	}
	list := a.s.subjects[uid]
	a.s.subjects[uid] = append(list[:i:i], list[i+1:]...)
	return c.JSON(http.StatusOK, echo.Map{"message": "Subject deleted"})
}

func (a academicAPI) generateConcepts(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	uid := userID(c)

	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	i := a.s.subjectIndexLocked(uid, id)
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
	}
	subj := a.s.subjects[uid][i].Clone()
	if len(subj.Concepts) == 0 {
		for n := 1; n <= conceptsPerSubject; n++ {
			subj.Concepts = append(subj.Concepts, models.Concept{
				ID:   a.s.idLocked(),
				Name: fmt.Sprintf("%s concept %d", subj.Name, n),
			})
		}
	}
	a.s.subjects[uid][i] = subj
	return c.JSON(http.StatusOK, echo.Map{"concepts": subj.Concepts})
}

func (a academicAPI) toggleConcept(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cid, err := pathID(c, "cid")
	if err != nil {
		return err
	}
	uid := userID(c)

	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	i := a.s.subjectIndexLocked(uid, id)
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
	}
	subj := a.s.subjects[uid][i].Clone()
	ci := subj.ConceptIndex(cid)
	if ci < 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Concept not found")
	}
	subj.Concepts[ci].Learned = !subj.Concepts[ci].Learned
	a.s.subjects[uid][i] = subj

	resp := echo.Map{"learned": subj.Concepts[ci].Learned}
	if !a.s.OmitToggleProgress {
		p := subj.LearnedCount() * 10
		if subj.IsCompleted() {
			p += 50
		}
		resp["progress"] = p
	}
	return c.JSON(http.StatusOK, resp)
}

func (a academicAPI) generateTask(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	uid := userID(c)

	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	i := a.s.subjectIndexLocked(uid, id)
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
	}
	subj := &a.s.subjects[uid][i]
	if subj.GeneratedTask == "" {
		subj.GeneratedTask = fmt.Sprintf("Build a small project that applies %s end to end.", subj.Name)
	}
	return c.JSON(http.StatusOK, models.GeneratedTask{Task: subj.GeneratedTask})
}

func (a academicAPI) submitProject(c echo.Context) error {
	sid, err := strconv.ParseInt(c.FormValue("subject_id"), 10, 64)
	if err != nil {
		return validationError("subject_id", "value is not a valid integer")
	}
	task := c.FormValue("task")
	fh, err := c.FormFile("documentation")
	if err != nil {
		return validationError("documentation", "field required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	uid := userID(c)
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	i := a.s.subjectIndexLocked(uid, sid)
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
	}
	subj := &a.s.subjects[uid][i]
	subj.Status = models.SubjectCompleted

	github := c.FormValue("github_link")
	a.s.submissions = append(a.s.submissions, Submission{
		UserID:        uid,
		SubjectID:     sid,
		Task:          task,
		GithubLink:    github,
		FileName:      fh.Filename,
		Documentation: doc,
	})

	desc := task
	p := models.Project{
		ID:                   a.s.idLocked(),
		Title:                subj.Name + " Project",
		Description:          &desc,
		Status:               models.ProjectCompleted,
		CompletionPercentage: 100,
		CreatedAt:            a.s.nowLocked(),
	}
	if github != "" {
		p.GithubURL = &github
	}
	a.s.projects[uid] = append([]models.Project{p}, a.s.projects[uid]...)

	return c.JSON(http.StatusOK, echo.Map{"message": "Project submitted successfully", "project_id": p.ID})
}

func (a academicAPI) skillList(c echo.Context) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return c.JSON(http.StatusOK, append([]models.Skill{}, a.s.skills[userID(c)]...))
}

func (a academicAPI) skillCreate(c echo.Context) error {
	var req models.SkillCreate
	if err := c.Bind(&req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Name) == "" {
		return validationError("name", "field required")
	}
	if req.ProficiencyLevel < 0 || req.ProficiencyLevel > 100 {
		return validationError("proficiency_level", "ensure this value is between 0 and 100")
	}

	sk := a.s.SeedSkill(models.UserProfile{ID: userID(c)}, models.Skill{
		Name:             req.Name,
		Category:         req.Category,
		ProficiencyLevel: req.ProficiencyLevel,
		TargetLevel:      req.TargetLevel,
		SubjectID:        req.SubjectID,
	})
	return c.JSON(http.StatusCreated, sk)
}

func (a academicAPI) skillProgress(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	level, err := strconv.ParseFloat(c.QueryParam("proficiency_level"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, []echo.Map{{
			"loc":  []string{"query", "proficiency_level"},
			"msg":  "field required",
			"type": "value_error.missing",
		}})
	}

	uid := userID(c)
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for i := range a.s.skills[uid] {
		if a.s.skills[uid][i].ID == id {
			a.s.skills[uid][i].ProficiencyLevel = level
			updated := a.s.nowLocked()
			a.s.skills[uid][i].UpdatedAt = &updated
			return c.JSON(http.StatusOK, models.SkillProgress{Message: "Skill progress updated", ProficiencyLevel: level})
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Skill not found")
}

func (a academicAPI) roadmap(c echo.Context) error {
	uid := userID(c)

	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	subjects := a.s.subjects[uid]
	if len(subjects) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Please add subjects first to generate a roadmap")
	}

	target := 80.0
	rm := models.Roadmap{}
	for _, subj := range subjects {
		item := models.RoadmapItem{Subject: subj.Name}
		for _, suffix := range []string{"fundamentals", "in practice"} {
			name := subj.Name + " " + suffix
			item.Skills = append(item.Skills, models.RoadmapSkill{Name: name, Category: "Technical", TargetLevel: &target})
			if !a.s.hasSkillLocked(uid, name) {
				sid := subj.ID
				created := a.s.nowLocked()
				cat := "Technical"
				tl := target
				a.s.skills[uid] = append(a.s.skills[uid], models.Skill{
					ID: a.s.idLocked(), Name: name, Category: &cat, TargetLevel: &tl, SubjectID: &sid, CreatedAt: &created,
				})
			}
			rm.TotalSkills++
		}
		rm.Roadmap = append(rm.Roadmap, item)
	}
	rm.EstimatedWeeks = rm.TotalSkills * 2
	return c.JSON(http.StatusOK, rm)
}

func (s *Server) hasSkillLocked(uid int64, name string) bool {
	for _, sk := range s.skills[uid] {
		if sk.Name == name {
			return true
		}
	}
	return false
}
