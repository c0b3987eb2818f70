package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
	"github.com/corporatewarfare/cwbot/internal/shared/goroutine"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

// Intents the bot subscribes to. GuildMembers is privileged and must be
// enabled for the application.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMessageReactions

// drainTimeout bounds how long Run waits for in-flight events on shutdown.
const drainTimeout = 10 * time.Second

// MemberJoin is a member arriving in a guild.
type MemberJoin struct {
	GuildID     string
	GuildName   string
	UserID      string
	Username    string
	Bot         bool
	MemberCount int
}

// Reaction is a reaction added to a message by someone other than the bot.
type Reaction struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	Emoji     string
}

// EventRouter dispatches interactions.
type EventRouter interface {
	Route(ctx context.Context, e interaction.Event) error
}

// EventHandler receives the non-interaction gateway events.
type EventHandler interface {
	HandleMemberJoin(ctx context.Context, m MemberJoin) error
	HandleReaction(ctx context.Context, r Reaction) error
}

// Gateway owns the session's websocket connection and feeds events to the
// router and handler. discordgo runs each event in its own goroutine.
type Gateway struct {
	session *discordgo.Session
	router  EventRouter
	handler EventHandler
	logger  logger.Interface

	mu       sync.Mutex
	baseCtx  context.Context
	inflight sync.WaitGroup
}

// NewSession creates an unopened bot session.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	s.Identify.Intents = Intents
	return s, nil
}

func NewGateway(session *discordgo.Session, router EventRouter, handler EventHandler, logger logger.Interface) *Gateway {
	return &Gateway{
		session: session,
		router:  router,
		handler: handler,
		logger:  logger,
		baseCtx: context.Background(),
	}
}

// Run connects, serves events until ctx is done, waits for in-flight events
// and disconnects.
func (g *Gateway) Run(ctx context.Context, activity string) error {
	g.mu.Lock()
	g.baseCtx = ctx
	g.mu.Unlock()

	removers := []func(){
		g.session.AddHandler(g.onReady(activity)),
		g.session.AddHandler(g.onInteraction),
		g.session.AddHandler(g.onMemberAdd),
		g.session.AddHandler(g.onReactionAdd),
	}
	defer func() {
		for _, remove := range removers {
			remove()
		}
	}()

	if err := g.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}
	g.logger.Infow("discord gateway connected")

	<-ctx.Done()
	g.logger.Infow("discord gateway shutting down")

	done := make(chan struct{})
	go func() {
		g.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(drainTimeout):
		g.logger.Warnw("timed out waiting for in-flight events")
	}

	if err := g.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord gateway: %w", err)
	}
	return nil
}

// Latency is the last heartbeat round trip.
func (g *Gateway) Latency() time.Duration {
	return g.session.HeartbeatLatency()
}

// track runs fn as one in-flight event with panic recovery.
func (g *Gateway) track(name string, fn func(ctx context.Context)) {
	g.mu.Lock()
	ctx := g.baseCtx
	g.mu.Unlock()

	g.inflight.Add(1)
	defer g.inflight.Done()
	defer goroutine.Recover(g.logger, name)

	// Handlers finish their platform calls even while shutting down.
	fn(context.WithoutCancel(ctx))
}

func (g *Gateway) onReady(activity string) func(s *discordgo.Session, r *discordgo.Ready) {
	return func(s *discordgo.Session, r *discordgo.Ready) {
		g.logger.Infow("discord session ready",
			"user", r.User.String(), "guilds", len(r.Guilds), "session_id", r.SessionID)
		if activity == "" {
			return
		}
		if err := s.UpdateGameStatus(0, activity); err != nil {
			g.logger.Warnw("failed to set activity", "error", err)
		}
	}
}

func (g *Gateway) onInteraction(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	g.track("interaction", func(ctx context.Context) {
		ev := toEvent(ic.Interaction, newResponder(s, ic.Interaction))
		if ev == nil {
			g.logger.Debugw("ignoring interaction", "type", ic.Type.String())
			return
		}
		// Route reports and logs its own failures.
		_ = g.router.Route(ctx, ev)
	})
}

func (g *Gateway) onMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil {
		return
	}
	g.track("member-add", func(ctx context.Context) {
		join := MemberJoin{
			GuildID:  m.GuildID,
			UserID:   m.User.ID,
			Username: m.User.Username,
			Bot:      m.User.Bot,
		}
		if guild, err := s.State.Guild(m.GuildID); err == nil {
			join.GuildName = guild.Name
			join.MemberCount = guild.MemberCount
		}
		if err := g.handler.HandleMemberJoin(ctx, join); err != nil {
			g.logger.Errorw("failed to handle member join", "guild_id", m.GuildID, "user_id", m.User.ID, "error", err)
		}
	})
}

func (g *Gateway) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.MessageReaction == nil {
		return
	}
	if s.State != nil && s.State.User != nil && r.UserID == s.State.User.ID {
		return
	}
	if r.Member != nil && r.Member.User != nil && r.Member.User.Bot {
		return
	}
	g.track("reaction-add", func(ctx context.Context) {
		err := g.handler.HandleReaction(ctx, Reaction{
			GuildID:   r.GuildID,
			ChannelID: r.ChannelID,
			MessageID: r.MessageID,
			UserID:    r.UserID,
			Emoji:     r.Emoji.APIName(),
		})
		if err != nil {
			g.logger.Errorw("failed to handle reaction", "message_id", r.MessageID, "user_id", r.UserID, "error", err)
		}
	})
}
