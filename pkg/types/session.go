package types

import (
	"errors"
	"time"
)

// SessionSnapshot is a persistable capture of the tab strip: open tabs in
// order, the active tab, and the current location. Snapshots carry no
// cached views; a restored session re-renders and re-captures.
type SessionSnapshot struct {
	SessionID string    `json:"session_id" yaml:"session_id"`
	Name      string    `json:"name" yaml:"name"`
	Tabs      []Tab     `json:"tabs" yaml:"tabs"`
	ActiveID  string    `json:"active_id" yaml:"active_id"`
	Location  Location  `json:"location" yaml:"location"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Session store lifecycle errors.
var (
	ErrSessionClosed      = errors.New("session store is closed")
	ErrSessionAlreadyOpen = errors.New("session store is already open")
	ErrSessionNotFound    = errors.New("session not found")
)
