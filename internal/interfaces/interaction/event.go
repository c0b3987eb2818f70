// Package interaction routes classified Discord interactions through an
// ordered middleware chain to one handler per interaction class.
package interaction

import "strings"

// Class is the kind of interaction an event was classified as.
type Class string

const (
	ClassCommand      Class = "command"
	ClassButton       Class = "button"
	ClassSelectMenu   Class = "selectMenu"
	ClassModal        Class = "modal"
	ClassAutocomplete Class = "autocomplete"
	ClassContextMenu  Class = "contextMenu"
)

type User struct {
	ID         string
	Username   string
	GlobalName string
	Avatar     string
	Bot        bool
}

// DisplayName prefers the global display name over the username.
func (u User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// Base holds the fields every interaction carries.
type Base struct {
	ID        string
	GuildID   string
	ChannelID string
	User      User
	// Permissions is the invoking member's permission bitset in the channel.
	Permissions int64
	Responder   Responder
}

// Common returns the shared fields of the event.
func (b *Base) Common() *Base { return b }

// Event is one of the *XxxEvent types below.
type Event interface {
	Common() *Base
}

type CommandEvent struct {
	Base
	Name       string
	Subcommand string
	// Options holds string, int64, float64 and bool values keyed by option
	// name.
	Options map[string]any
}

func (e *CommandEvent) StringOption(name string) string {
	s, _ := e.Options[name].(string)
	return s
}

func (e *CommandEvent) IntOption(name string) (int64, bool) {
	switch v := e.Options[name].(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	return 0, false
}

type ButtonEvent struct {
	Base
	CustomID  string
	MessageID string
}

type SelectMenuEvent struct {
	Base
	CustomID  string
	MessageID string
	Values    []string
}

type ModalEvent struct {
	Base
	CustomID string
	// Fields maps text input custom ids to the submitted values.
	Fields map[string]string
}

type AutocompleteEvent struct {
	Base
	Name    string
	Focused string
	Value   string
}

type ContextMenuEvent struct {
	Base
	Name     string
	TargetID string
	// OnMessage is true for message context menus, false for user menus.
	OnMessage bool
}

// Classify maps an event to its class. ok is false for anything the router
// does not understand.
func Classify(e Event) (Class, bool) {
	switch e.(type) {
	case *CommandEvent:
		return ClassCommand, true
	case *ButtonEvent:
		return ClassButton, true
	case *SelectMenuEvent:
		return ClassSelectMenu, true
	case *ModalEvent:
		return ClassModal, true
	case *AutocompleteEvent:
		return ClassAutocomplete, true
	case *ContextMenuEvent:
		return ClassContextMenu, true
	}
	return "", false
}

// SplitCustomID splits "ticket_create_modal:bug" into its action and
// argument.
func SplitCustomID(customID string) (action, arg string) {
	action, arg, _ = strings.Cut(customID, ":")
	return action, arg
}
