package apitest

import (
	"time"

	"github.com/edupilot/edupilot/internal/client/models"
)

// SeedUser registers an account directly and returns its profile.
func (s *Server) SeedUser(email, password, fullName string) models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.nowLocked()
	p := models.UserProfile{
		ID:        s.idLocked(),
		Email:     email,
		FullName:  fullName,
		IsActive:  true,
		CreatedAt: &created,
	}
	s.accounts[email] = &account{profile: p, password: password}
	return p
}

// Token issues a valid token for the user.
func (s *Server) Token(user models.UserProfile) string {
	tok, err := issueToken(user, expirationDelta)
	if err != nil {
		panic(err)
	}
	return tok
}

// ExpiredToken issues a token that the server rejects as expired.
func (s *Server) ExpiredToken(user models.UserProfile) string {
	tok, err := issueToken(user, -time.Minute)
	if err != nil {
		panic(err)
	}
	return tok
}

// SeedSubject stores subj for the user, assigning ids to the subject and
// its concepts when they are zero.
func (s *Server) SeedSubject(user models.UserProfile, subj models.Subject) models.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()

	if subj.ID == 0 {
		subj.ID = s.idLocked()
	}
	subj = subj.Clone()
	for i := range subj.Concepts {
		if subj.Concepts[i].ID == 0 {
			subj.Concepts[i].ID = s.idLocked()
		}
	}
	if subj.Status == "" {
		subj.Status = models.SubjectInProgress
	}
	if subj.Concepts == nil {
		subj.Concepts = []models.Concept{}
	}
	created := s.nowLocked()
	subj.CreatedAt = &created
	s.subjects[user.ID] = append(s.subjects[user.ID], subj)
	return subj
}

// SeedProject stores p for the user.
func (s *Server) SeedProject(user models.UserProfile, p models.Project) models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.idLocked()
	}
	if p.Status == "" {
		p.Status = models.ProjectNotStarted
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.nowLocked()
	}
	s.projects[user.ID] = append(s.projects[user.ID], p)
	return p
}

// SeedSkill stores sk for the user.
func (s *Server) SeedSkill(user models.UserProfile, sk models.Skill) models.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sk.ID == 0 {
		sk.ID = s.idLocked()
	}
	created := s.nowLocked()
	sk.CreatedAt = &created
	s.skills[user.ID] = append(s.skills[user.ID], sk)
	return sk
}

// SeedCV stores cv as the user's current CV.
func (s *Server) SeedCV(user models.UserProfile, cv models.CV) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cvs[user.ID] = cv
}

// SeedJobs replaces the job postings served by /opportunities/jobs.
func (s *Server) SeedJobs(jobs ...models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append([]models.Job(nil), jobs...)
}

// Subjects returns the server-side subjects of the user.
func (s *Server) Subjects(user models.UserProfile) []models.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Subject, 0, len(s.subjects[user.ID]))
	for _, subj := range s.subjects[user.ID] {
		out = append(out, subj.Clone())
	}
	return out
}

// Projects returns the server-side projects of the user.
func (s *Server) Projects(user models.UserProfile) []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Project(nil), s.projects[user.ID]...)
}

// Skills returns the server-side skills of the user.
func (s *Server) Skills(user models.UserProfile) []models.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Skill(nil), s.skills[user.ID]...)
}

// CV returns the user's stored CV.
func (s *Server) CV(user models.UserProfile) (models.CV, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cv, ok := s.cvs[user.ID]
	return cv, ok
}

// Submissions returns every project submission received so far.
func (s *Server) Submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Submission(nil), s.submissions...)
}
