package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/syncer"
	"github.com/edupilot/edupilot/internal/client/validation"
	"github.com/edupilot/edupilot/internal/logging"
)

const (
	MsgLoadSkills      = "Failed to load skills"
	MsgAddSkill        = "Failed to add skill"
	MsgUpdateSkill     = "Failed to update skill progress"
	MsgGenerateRoadmap = "Failed to generate skill roadmap"
)

const levelRule = "gte=0,lte=100"

// SkillService manages tracked skills and the roadmap.
type SkillService interface {
	FetchAll(ctx context.Context) error
	List() []models.Skill
	ByCategory() map[string][]models.Skill
	Add(ctx context.Context, in models.SkillCreate) (models.Skill, error)
	UpdateProgress(ctx context.Context, id int64, level float64) (models.Skill, error)
	Roadmap(ctx context.Context) (models.Roadmap, error)
	Clear()
}

type skillService struct {
	client client.Client
	skills *syncer.Collection[int64, models.Skill]
	logger logging.Logger
}

func NewSkillService(c client.Client, logger logging.Logger) SkillService {
	return &skillService{
		client: c,
		skills: syncer.New(func(s models.Skill) int64 { return s.ID }),
		logger: logger,
	}
}

func (s *skillService) FetchAll(ctx context.Context) error {
	if err := s.skills.FetchAll(ctx, s.client.ListSkills); err != nil {
		return fmt.Errorf("list skills: %w", err)
	}
	return nil
}

func (s *skillService) List() []models.Skill {
	return s.skills.Items()
}

// ByCategory groups skills by category; skills without one go under
// "Uncategorized".
func (s *skillService) ByCategory() map[string][]models.Skill {
	out := make(map[string][]models.Skill)
	for _, sk := range s.skills.Items() {
		cat := "Uncategorized"
		if sk.Category != nil && *sk.Category != "" {
			cat = *sk.Category
		}
		out[cat] = append(out[cat], sk)
	}
	return out
}

func (s *skillService) Add(ctx context.Context, in models.SkillCreate) (models.Skill, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return models.Skill{}, err
	}
	sk, err := s.skills.Create(ctx, func(ctx context.Context) (models.Skill, error) {
		return s.client.CreateSkill(ctx, in)
	})
	if err != nil {
		return models.Skill{}, fmt.Errorf("create skill: %w", err)
	}
	return sk, nil
}

// UpdateProgress sets a skill's proficiency. The endpoint answers with the
// confirmed level only, which is applied to the local copy.
func (s *skillService) UpdateProgress(ctx context.Context, id int64, level float64) (models.Skill, error) {
	if err := validation.Var("proficiency_level", level, levelRule); err != nil {
		return models.Skill{}, err
	}
	if _, ok := s.skills.Get(id); !ok {
		return models.Skill{}, fmt.Errorf("skill %d: %w", id, client.ErrNotFound)
	}

	seq := s.skills.Next()
	res, err := s.client.UpdateSkillProgress(ctx, id, level)
	if err != nil {
		return models.Skill{}, fmt.Errorf("update skill %d: %w", id, err)
	}

	if !s.skills.Mutate(seq, id, func(sk models.Skill) models.Skill {
		sk.ProficiencyLevel = res.ProficiencyLevel
		return sk
	}) {
		s.logger.Debug(ctx, "dropping superseded skill progress", "skill_id", id, "level", res.ProficiencyLevel)
	}
	sk, _ := s.skills.Get(id)
	return sk, nil
}

// Roadmap asks the server for a roadmap, which also creates the suggested
// skills, and reloads the skill list.
func (s *skillService) Roadmap(ctx context.Context) (models.Roadmap, error) {
	rm, err := s.client.Roadmap(ctx)
	if err != nil {
		return models.Roadmap{}, fmt.Errorf("roadmap: %w", err)
	}
	if err := s.FetchAll(ctx); err != nil {
		return rm, err
	}
	return rm, nil
}

func (s *skillService) Clear() {
	s.skills.Clear()
}
