package models

import "strings"

// Job is one external job posting returned by /opportunities/jobs.
type Job struct {
	ID             string   `json:"id"`
	Role           string   `json:"role"`
	CompanyName    string   `json:"company_name"`
	Location       string   `json:"location,omitempty"`
	Remote         bool     `json:"remote"`
	EmploymentType string   `json:"employment_type,omitempty"`
	DatePosted     string   `json:"date_posted,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	Text           string   `json:"text,omitempty"`
	URL            string   `json:"url,omitempty"`
}

// IsFullTime and IsPartTime classify the posting by its employment type.
func (j Job) IsFullTime() bool {
	return strings.Contains(strings.ToLower(j.EmploymentType), "full")
}

func (j Job) IsPartTime() bool {
	return strings.Contains(strings.ToLower(j.EmploymentType), "part")
}

// JobQuery filters a job search. Empty fields are not sent.
type JobQuery struct {
	Search   string
	Location string
	Remote   *bool
}

// JobResults is the body of GET /opportunities/jobs.
type JobResults struct {
	Results []Job `json:"results"`
}
