package session

import "github.com/edupilot/edupilot/internal/client/models"

// persisted is the on-disk envelope: {"state": {...}, "version": 0}.
type persisted struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}

type persistedState struct {
	User            *models.UserProfile `json:"user"`
	Token           *string             `json:"token"`
	IsAuthenticated bool                `json:"is_authenticated"`
}

func fromSession(s Session) persistedState {
	ps := persistedState{User: s.User, IsAuthenticated: s.IsAuthenticated}
	if s.Token != "" {
		tok := s.Token
		ps.Token = &tok
	}
	return ps
}

// session converts the envelope back, collapsing any inconsistent
// combination to Anonymous.
func (ps persistedState) session() Session {
	if !ps.IsAuthenticated || ps.Token == nil || *ps.Token == "" {
		return Session{}
	}
	return Session{User: ps.User, Token: *ps.Token, IsAuthenticated: true}
}
