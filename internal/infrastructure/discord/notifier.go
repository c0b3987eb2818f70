package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord/views"
	"github.com/corporatewarfare/cwbot/internal/shared/config"
)

// Notifier renders notices with views and posts them.
type Notifier struct {
	platform *Platform
	views    *views.Views
	tickets  config.TicketConfig
}

var _ notice.Notifier = (*Notifier)(nil)

func NewNotifier(platform *Platform, v *views.Views, tickets config.TicketConfig) *Notifier {
	return &Notifier{platform: platform, views: v, tickets: tickets}
}

func (n *Notifier) Notify(ctx context.Context, channelID string, nt notice.Notice) (string, error) {
	msg, err := n.Render(nt)
	if err != nil {
		return "", err
	}
	return n.platform.Send(ctx, channelID, msg)
}

// Render builds the message for a notice without sending it.
func (n *Notifier) Render(nt notice.Notice) (*discordgo.MessageSend, error) {
	switch nt.Kind {
	case notice.KindTicketOpened:
		return n.views.TicketOpened(nt, n.tickets.Category(nt.Category)), nil
	case notice.KindTicketClaimed:
		return n.views.TicketClaimed(nt), nil
	case notice.KindTicketClosed:
		return n.views.TicketClosed(nt), nil
	case notice.KindTicketPanel:
		return &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{n.views.TicketPanel(n.tickets.Categories)},
		}, nil
	case notice.KindWelcome:
		return n.views.Welcome(nt), nil
	case notice.KindVerified:
		return n.views.Verified(nt), nil
	}
	return nil, fmt.Errorf("unknown notice kind %q", nt.Kind)
}
