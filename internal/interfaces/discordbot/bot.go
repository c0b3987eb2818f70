// Package discordbot implements the slash commands, components, modals and
// gateway events of the bot on top of the application use cases.
package discordbot

import (
	"context"
	"fmt"
	"time"

	memberUsecases "github.com/corporatewarfare/cwbot/internal/application/member/usecases"
	ticketUsecases "github.com/corporatewarfare/cwbot/internal/application/ticket/usecases"
	welcomeUsecases "github.com/corporatewarfare/cwbot/internal/application/welcome/usecases"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord/views"
	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
	"github.com/corporatewarfare/cwbot/internal/shared/config"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

// Deps are the collaborators of the bot. Every field is required unless
// marked optional.
type Deps struct {
	CreateTicket  ticketUsecases.CreateTicketExecutor
	ClaimTicket   ticketUsecases.ClaimTicketExecutor
	CloseTicket   ticketUsecases.CloseTicketExecutor
	Transcript    ticketUsecases.GenerateTranscriptExecutor
	DeleteTicket  ticketUsecases.DeleteTicketExecutor
	TicketPanel   TicketPanelService
	Welcome       WelcomeService
	Verify        welcomeUsecases.HandleVerificationExecutor
	WelcomeStatus WelcomeStatusQuerier
	SyncMembers   memberUsecases.SyncMembersExecutor
	LinkedProfile LinkedProfileResolver
	Game          GameAPI
	Messenger     Messenger
	Views         *views.Views

	Tickets     config.TicketConfig
	VerifyEmoji string
	// Latency reports the gateway heartbeat round trip for /ping. Optional.
	Latency func() time.Duration
	// GuildInfo returns a guild's name and member count from the gateway
	// cache. Optional.
	GuildInfo func(guildID string) (name string, members int)
}

type (
	commandHandler func(req *interaction.Request, ev *interaction.CommandEvent) error
	buttonHandler  func(req *interaction.Request, ev *interaction.ButtonEvent, arg string) error
	selectHandler  func(req *interaction.Request, ev *interaction.SelectMenuEvent, arg string) error
	modalHandler   func(req *interaction.Request, ev *interaction.ModalEvent, arg string) error
)

// Bot dispatches routed interactions by command name or custom id action and
// handles member joins and reactions.
type Bot struct {
	Deps
	logger logger.Interface

	commands map[string]commandHandler
	buttons  map[string]buttonHandler
	selects  map[string]selectHandler
	modals   map[string]modalHandler

	// after schedules delayed deletes.
	after func(d time.Duration, fn func())
}

var _ discord.EventHandler = (*Bot)(nil)

func New(deps Deps, log logger.Interface) *Bot {
	if deps.Latency == nil {
		deps.Latency = func() time.Duration { return 0 }
	}
	b := &Bot{
		Deps:   deps,
		logger: log,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}

	b.commands = map[string]commandHandler{
		"ping":         b.ping,
		"help":         b.help,
		"ticket":       b.ticketCommand,
		"ticket-panel": b.ticketPanel,
		"welcome":      b.welcomeCommand,
		"sync":         b.sync,
		"profile":      b.profile,
		"corporation":  b.corporation,
		"leaderboard":  b.leaderboard,
		"time":         b.gameTime,
		"state":        b.state,
		"market":       b.market,
	}
	b.buttons = map[string]buttonHandler{
		views.IDTicketClaim:        b.claimButton,
		views.IDTicketClose:        b.closeButton,
		views.IDTicketConfirmClose: b.confirmCloseButton,
		views.IDTicketCancelClose:  b.cancelCloseButton,
		views.IDTicketCloseReason:  b.closeReasonButton,
		views.IDTicketTranscript:   b.transcriptButton,
		views.IDTicketDelete:       b.deleteButton,
		views.IDHelpBack:           b.helpBack,
		views.IDLeaderboardPage:    b.leaderboardPage,
	}
	b.selects = map[string]selectHandler{
		views.IDTicketCategorySelect: b.categorySelect,
		views.IDHelpCategorySelect:   b.helpSelect,
		views.IDHelpCommandSelect:    b.helpSelect,
	}
	b.modals = map[string]modalHandler{
		views.IDTicketCreateModal: b.createTicketModal,
		views.IDTicketCloseModal:  b.closeReasonModal,
	}
	return b
}

// Register binds one handler per interaction class.
func (b *Bot) Register(r *interaction.Router) {
	r.Register(interaction.ClassCommand, b.routeCommand)
	r.Register(interaction.ClassButton, b.routeButton)
	r.Register(interaction.ClassSelectMenu, b.routeSelect)
	r.Register(interaction.ClassModal, b.routeModal)
	r.Register(interaction.ClassAutocomplete, b.routeAutocomplete)
	r.Register(interaction.ClassContextMenu, b.routeContextMenu)
}

func (b *Bot) routeCommand(req *interaction.Request) error {
	ev := req.Event.(*interaction.CommandEvent)
	h, ok := b.commands[ev.Name]
	if !ok {
		return fmt.Errorf("unknown command %q", ev.Name)
	}
	return h(req, ev)
}

func (b *Bot) routeButton(req *interaction.Request) error {
	ev := req.Event.(*interaction.ButtonEvent)
	action, arg := interaction.SplitCustomID(ev.CustomID)
	h, ok := b.buttons[action]
	if !ok {
		req.Logger.Debugw("ignoring unknown button", "custom_id", ev.CustomID)
		return nil
	}
	return h(req, ev, arg)
}

func (b *Bot) routeSelect(req *interaction.Request) error {
	ev := req.Event.(*interaction.SelectMenuEvent)
	action, arg := interaction.SplitCustomID(ev.CustomID)
	h, ok := b.selects[action]
	if !ok {
		req.Logger.Debugw("ignoring unknown select menu", "custom_id", ev.CustomID)
		return nil
	}
	return h(req, ev, arg)
}

func (b *Bot) routeModal(req *interaction.Request) error {
	ev := req.Event.(*interaction.ModalEvent)
	action, arg := interaction.SplitCustomID(ev.CustomID)
	h, ok := b.modals[action]
	if !ok {
		req.Logger.Debugw("ignoring unknown modal", "custom_id", ev.CustomID)
		return nil
	}
	return h(req, ev, arg)
}

func (b *Bot) routeAutocomplete(req *interaction.Request) error {
	ev := req.Event.(*interaction.AutocompleteEvent)
	if ev.Name == "help" && ev.Focused == "command" {
		return b.helpAutocomplete(req, ev)
	}
	return ev.Responder.Autocomplete(req.Ctx, nil)
}

func (b *Bot) routeContextMenu(req *interaction.Request) error {
	ev := req.Event.(*interaction.ContextMenuEvent)
	if ev.Name == views.ContextViewProfile && !ev.OnMessage {
		return b.viewProfile(req, ev)
	}
	return fmt.Errorf("unknown context menu %q", ev.Name)
}

// reply answers with a plain message.
func reply(ctx context.Context, resp interaction.Responder, content string, ephemeral bool) error {
	return resp.Reply(ctx, interaction.Response{Content: content, Ephemeral: ephemeral})
}

// schedule runs fn after d on a fresh context, logging its error.
func (b *Bot) schedule(d time.Duration, name string, fn func(ctx context.Context) error) {
	b.after(d, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			b.logger.Warnw("scheduled task failed", "task", name, "error", err)
		}
	})
}
