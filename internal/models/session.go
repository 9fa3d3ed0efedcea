package models

// Session is the platform-managed conversation state attached to a request.
// The skill never persists it; attributes are echoed back unchanged.
type Session struct {
	SessionID   string                 `json:"sessionId"`
	New         bool                   `json:"new"`
	Application Application            `json:"application"`
	User        *User                  `json:"user,omitempty"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID string `json:"userId"`
}

// IsNew reports whether this request opened the session.
func (s *Session) IsNew() bool {
	return s != nil && s.New
}

// ApplicationID returns the skill id the platform addressed, or "".
func (s *Session) ApplicationID() string {
	if s == nil {
		return ""
	}
	return s.Application.ApplicationID
}
