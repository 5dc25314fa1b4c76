package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/services"
)

// Skills lists tracked skills grouped by category.
func (a *App) Skills(ctx context.Context, _ []string) error {
	if err := a.skillService.FetchAll(ctx); err != nil {
		return a.fail(ctx, "load skills", err, services.MsgLoadSkills)
	}
	groups := a.skillService.ByCategory()
	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	printSkills(a.out, categories, groups)
	return nil
}

func (a *App) AddSkill(ctx context.Context, args []string) error {
	name, err := a.textArg(args, "Skill name")
	if err != nil {
		return err
	}
	in := models.SkillCreate{Name: name}
	if in.Category, err = GetOptionalText(a.reader, "Category", a.out); err != nil {
		return err
	}
	level, err := GetOptionalFloat(a.reader, "Current level 0-100", "proficiency_level", a.out)
	if err != nil {
		return a.fail(ctx, "add skill", err, services.MsgAddSkill)
	}
	if level != nil {
		in.ProficiencyLevel = *level
	}
	if in.TargetLevel, err = GetOptionalFloat(a.reader, "Target level 0-100", "target_level", a.out); err != nil {
		return a.fail(ctx, "add skill", err, services.MsgAddSkill)
	}

	sk, err := a.skillService.Add(ctx, in)
	if err != nil {
		return a.fail(ctx, "add skill", err, services.MsgAddSkill)
	}
	fmt.Fprintf(a.out, "Tracking %s (id %d) at %s\n", sk.Name, sk.ID, pct(sk.ProficiencyLevel))
	return nil
}

func (a *App) SkillProgress(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "Skill id", "id")
	if err != nil {
		return a.fail(ctx, "update skill", err, services.MsgUpdateSkill)
	}

	raw := ""
	if len(args) > 1 {
		raw = args[1]
	} else if raw, err = getSimpleText(a.reader, "New level 0-100", a.out); err != nil {
		return err
	}
	level, err := parseFloat("level", raw)
	if err != nil {
		return a.fail(ctx, "update skill", err, services.MsgUpdateSkill)
	}
	if err := a.loadSkill(ctx, id); err != nil {
		return a.fail(ctx, "update skill", err, services.MsgUpdateSkill)
	}

	sk, err := a.skillService.UpdateProgress(ctx, id, level)
	if err != nil {
		return a.fail(ctx, "update skill", err, services.MsgUpdateSkill)
	}
	fmt.Fprintf(a.out, "%s is now at %s\n", sk.Name, pct(sk.ProficiencyLevel))
	return nil
}

func (a *App) Roadmap(ctx context.Context, _ []string) error {
	r, err := a.skillService.Roadmap(ctx)
	if err != nil {
		return a.fail(ctx, "roadmap", err, services.MsgGenerateRoadmap)
	}
	printRoadmap(a.out, r)
	return nil
}

// loadSkill fetches the skill list unless id is already known locally.
func (a *App) loadSkill(ctx context.Context, id int64) error {
	for _, sk := range a.skillService.List() {
		if sk.ID == id {
			return nil
		}
	}
	return a.skillService.FetchAll(ctx)
}
