package models

import "time"

// CV formats understood by POST /cv/generate-formatted.
const (
	CVFormatModern  = "modern"
	CVFormatClassic = "classic"
	CVFormatMinimal = "minimal"
	CVFormatATS     = "ats"
)

var CVFormats = []string{CVFormatModern, CVFormatClassic, CVFormatMinimal, CVFormatATS}

type Education struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

type Experience struct {
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

type Certification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty" validate:"omitempty,url"`
}

type CVProject struct {
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	URL          string `json:"url,omitempty" validate:"omitempty,url"`
}

// CV is the user's curriculum vitae as stored by the server.
type CV struct {
	FullName        string          `json:"full_name"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email" validate:"omitempty,email"`
	LinkedinURL     string          `json:"linkedin_url" validate:"omitempty,url"`
	GithubURL       string          `json:"github_url" validate:"omitempty,url"`
	PortfolioURL    string          `json:"portfolio_url" validate:"omitempty,url"`
	Location        string          `json:"location"`
	Summary         string          `json:"summary"`
	Education       []Education     `json:"education" validate:"dive"`
	Experience      []Experience    `json:"experience" validate:"dive"`
	TechnicalSkills string          `json:"technical_skills"`
	SoftSkills      string          `json:"soft_skills"`
	Languages       string          `json:"languages"`
	Certifications  []Certification `json:"certifications" validate:"dive"`
	Projects        []CVProject     `json:"projects" validate:"dive"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

// CVFormatRequest is the body of POST /cv/generate-formatted.
type CVFormatRequest struct {
	CVData CV     `json:"cvData"`
	Format string `json:"format"`
}

// CVFormatResponse carries the rendered CV text.
type CVFormatResponse struct {
	FormattedCV string `json:"formatted_cv"`
}
