// Package notice describes user-facing messages as intents. The Discord
// adapter decides how each kind is rendered.
package notice

import "context"

type Kind string

const (
	KindTicketOpened  Kind = "ticket_opened"
	KindTicketClaimed Kind = "ticket_claimed"
	KindTicketClosed  Kind = "ticket_closed"
	KindTicketPanel   Kind = "ticket_panel"
	KindWelcome       Kind = "welcome"
	KindVerified      Kind = "verified"
)

// Notice is one message to post into a channel.
type Notice struct {
	Kind Kind

	GuildID   string
	GuildName string
	// UserID is the member the notice is about: the ticket requester or the
	// member joining.
	UserID   string
	Username string
	// ActorID is the staff member who claimed or closed a ticket.
	ActorID string

	TicketNumber int
	Category     string
	Subject      string
	Description  string
	Reason       string
	StaffRoleID  string

	RulesChannelID string
	MemberCount    int
	VerifyEmoji    string
}

// Notifier posts notices and returns the id of the posted message.
type Notifier interface {
	Notify(ctx context.Context, channelID string, n Notice) (string, error)
}
