package models

import "time"

// Skill is a tracked competency with a 0..100 proficiency level.
type Skill struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Category         *string    `json:"category,omitempty"`
	ProficiencyLevel float64    `json:"proficiency_level"`
	TargetLevel      *float64   `json:"target_level,omitempty"`
	SubjectID        *int64     `json:"subject_id,omitempty"`
	AcquiredDate     *time.Time `json:"acquired_date,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// SkillCreate is the body of POST /academic/skills.
type SkillCreate struct {
	Name             string   `json:"name" validate:"notblank"`
	Category         *string  `json:"category,omitempty"`
	ProficiencyLevel float64  `json:"proficiency_level" validate:"gte=0,lte=100"`
	TargetLevel      *float64 `json:"target_level,omitempty" validate:"omitempty,gte=0,lte=100"`
	SubjectID        *int64   `json:"subject_id,omitempty"`
}

// SkillProgress is returned by PUT /academic/skills/{id}/progress.
type SkillProgress struct {
	Message          string  `json:"message"`
	ProficiencyLevel float64 `json:"proficiency_level"`
}

// RoadmapSkill is one suggested skill inside a roadmap entry.
type RoadmapSkill struct {
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	TargetLevel *float64 `json:"target_level,omitempty"`
	Description string   `json:"description,omitempty"`
}

// RoadmapItem groups suggested skills under a subject name.
type RoadmapItem struct {
	Subject string         `json:"subject"`
	Skills  []RoadmapSkill `json:"skills"`
}

// Roadmap is the body of GET /academic/roadmap.
type Roadmap struct {
	Roadmap        []RoadmapItem `json:"roadmap"`
	TotalSkills    int           `json:"total_skills"`
	EstimatedWeeks int           `json:"estimated_weeks"`
}
