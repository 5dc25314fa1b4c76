package models

import "time"

// UserProfile is the server's view of the current user. It is replaced
// wholesale on refresh and never merged field by field.
type UserProfile struct {
	ID              int64      `json:"id,omitempty"`
	Email           string     `json:"email,omitempty"`
	FullName        string     `json:"full_name,omitempty"`
	Username        *string    `json:"username,omitempty"`
	DegreeProgram   *string    `json:"degree_program,omitempty"`
	CurrentYear     *int       `json:"current_year,omitempty"`
	CurrentSemester *int       `json:"current_semester,omitempty"`
	CareerGoal      *string    `json:"career_goal,omitempty"`
	IsActive        bool       `json:"is_active,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// IsEmpty reports whether p carries no server data, which is the case for
// the placeholder installed by rehydration.
func (p *UserProfile) IsEmpty() bool {
	return p == nil || *p == UserProfile{}
}

// DisplayName returns the best human label for the profile.
func (p *UserProfile) DisplayName() string {
	if p == nil {
		return ""
	}
	switch {
	case p.FullName != "":
		return p.FullName
	case p.Username != nil && *p.Username != "":
		return *p.Username
	default:
		return p.Email
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	DegreeProgram   *string `json:"degree_program,omitempty"`
	CurrentYear     *int    `json:"current_year,omitempty"`
	CurrentSemester *int    `json:"current_semester,omitempty"`
	CareerGoal      *string `json:"career_goal,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type,omitempty"`
	User        UserProfile `json:"user"`
}

// ProfileUpdate is the body of PUT /auth/me. Nil fields are left alone by
// the server.
type ProfileUpdate struct {
	Username        *string `json:"username,omitempty"`
	FullName        *string `json:"full_name,omitempty"`
	DegreeProgram   *string `json:"degree_program,omitempty"`
	CurrentYear     *int    `json:"current_year,omitempty"`
	CurrentSemester *int    `json:"current_semester,omitempty"`
	CareerGoal      *string `json:"career_goal,omitempty"`
}
