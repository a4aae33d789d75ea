package domain

import "time"

// Session is the per-browser state kept for the lifetime of a visit.
type Session struct {
	ID            string                `json:"id"`
	Authenticated bool                  `json:"authenticated"`
	CreatedAt     time.Time             `json:"created_at"`
	ExpiresAt     time.Time             `json:"expires_at"`
	Outputs       map[string][]Artifact `json:"outputs,omitempty"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SetOutputs replaces the named artifact set.
func (s *Session) SetOutputs(set string, artifacts []Artifact) {
	if s.Outputs == nil {
		s.Outputs = make(map[string][]Artifact)
	}
	if len(artifacts) == 0 {
		delete(s.Outputs, set)
		return
	}
	s.Outputs[set] = artifacts
}

func (s *Session) Artifact(set, name string) (Artifact, error) {
	for _, a := range s.Outputs[set] {
		if a.Name == name {
			return a, nil
		}
	}
	return Artifact{}, ErrArtifactNotFound
}
