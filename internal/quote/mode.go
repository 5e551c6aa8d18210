package quote

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects which view a session shows.
type Mode int

const (
	ModeEdit Mode = iota
	ModePreview
)

func (m Mode) String() string {
	if m == ModePreview {
		return "preview"
	}
	return "edit"
}

// ParseMode maps a submitted mode name to a Mode.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "edit":
		return ModeEdit, nil
	case "preview":
		return ModePreview, nil
	}
	return ModeEdit, fmt.Errorf("unknown mode %q", raw)
}

// Session is one visitor's quotation: the form being edited and the active view.
type Session struct {
	ID   string
	Form Form
	Mode Mode
}

// NewSession starts a session in edit mode with a default form.
func NewSession(id string, now time.Time) Session {
	return Session{ID: id, Form: NewForm(now), Mode: ModeEdit}
}

// ShowPreview switches to the printable view.
func (s Session) ShowPreview() Session {
	s.Mode = ModePreview
	return s
}

// ShowEditor switches back to the editor.
func (s Session) ShowEditor() Session {
	s.Mode = ModeEdit
	return s
}

// SwitchTo moves the session to mode m.
func (s Session) SwitchTo(m Mode) Session {
	if m == ModePreview {
		return s.ShowPreview()
	}
	return s.ShowEditor()
}
