package models

import (
	"strings"
	"time"
)

// Document is a platform-neutral rich-text block (an embed on Discord).
type Document struct {
	Title       string
	Description string
	Color       int
	Fields      []Field
	Footer      string
	ImageURL    string
	Timestamp   time.Time
}

type Field struct {
	Name   string
	Value  string
	Inline bool
}

type ControlStyle int

const (
	ControlPrimary ControlStyle = iota + 1
	ControlSecondary
)

// Control is a single actionable element attached to a message.
type Control struct {
	Label    string
	Glyph    string
	ActionID string
	Style    ControlStyle
	Disabled bool
}

// Response is what a handler sends back for one event.
type Response struct {
	Ephemeral bool
	// MentionUserID, when set, is rendered as a mention line before Content.
	MentionUserID string
	Content       string
	Documents     []Document
	Controls      []Control
}

const revealActionPrefix = "unlock:"

// RevealControl builds the button that unlocks the secret stored under id.
func RevealControl(id SecretID) Control {
	return Control{
		Label:    "Unlock Content",
		Glyph:    "🔒",
		ActionID: revealActionPrefix + id.String(),
		Style:    ControlPrimary,
	}
}

// ParseRevealAction extracts the SecretID bound to a reveal control.
func ParseRevealAction(actionID string) (SecretID, bool) {
	raw, ok := strings.CutPrefix(actionID, revealActionPrefix)
	if !ok {
		return 0, false
	}
	id, err := ParseSecretID(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
