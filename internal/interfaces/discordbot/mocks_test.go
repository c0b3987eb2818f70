package discordbot

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	memberUsecases "github.com/corporatewarfare/cwbot/internal/application/member/usecases"
	ticketUsecases "github.com/corporatewarfare/cwbot/internal/application/ticket/usecases"
	welcomeUsecases "github.com/corporatewarfare/cwbot/internal/application/welcome/usecases"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord/views"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/gameapi"
	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
	"github.com/corporatewarfare/cwbot/internal/shared/config"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

type mockCreateTicket struct {
	ExecuteFunc func(ctx context.Context, cmd ticketUsecases.CreateTicketCommand) (*ticketUsecases.CreateTicketResult, error)
	calls       []ticketUsecases.CreateTicketCommand
}

func (m *mockCreateTicket) Execute(ctx context.Context, cmd ticketUsecases.CreateTicketCommand) (*ticketUsecases.CreateTicketResult, error) {
	m.calls = append(m.calls, cmd)
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &ticketUsecases.CreateTicketResult{Channel: &ticketUsecases.Channel{ID: "new-chan", Name: "ticket-1"}}, nil
}

type mockClaimTicket struct {
	result *ticketUsecases.TicketResult
	err    error
	calls  []ticketUsecases.ClaimTicketCommand
}

func (m *mockClaimTicket) Execute(_ context.Context, cmd ticketUsecases.ClaimTicketCommand) (*ticketUsecases.TicketResult, error) {
	m.calls = append(m.calls, cmd)
	return m.result, m.err
}

type mockCloseTicket struct {
	result *ticketUsecases.CloseTicketResult
	err    error
	calls  []ticketUsecases.CloseTicketCommand
}

func (m *mockCloseTicket) Execute(_ context.Context, cmd ticketUsecases.CloseTicketCommand) (*ticketUsecases.CloseTicketResult, error) {
	m.calls = append(m.calls, cmd)
	return m.result, m.err
}

type mockTranscript struct {
	result *ticketUsecases.TranscriptResult
	err    error
}

func (m *mockTranscript) Execute(_ context.Context, _ ticketUsecases.GenerateTranscriptQuery) (*ticketUsecases.TranscriptResult, error) {
	return m.result, m.err
}

type mockDeleteTicket struct {
	calls []ticketUsecases.DeleteTicketCommand
}

func (m *mockDeleteTicket) Execute(_ context.Context, cmd ticketUsecases.DeleteTicketCommand) (*ticketUsecases.DeleteTicketResult, error) {
	m.calls = append(m.calls, cmd)
	return &ticketUsecases.DeleteTicketResult{Outcome: ticketUsecases.Outcome{Success: true}, RecordDeleted: true}, nil
}

type mockTicketPanel struct {
	panels map[string]bool
	posted []ticketUsecases.PostTicketPanelCommand
}

func (m *mockTicketPanel) Execute(_ context.Context, cmd ticketUsecases.PostTicketPanelCommand) (*ticketUsecases.PostTicketPanelResult, error) {
	m.posted = append(m.posted, cmd)
	return &ticketUsecases.PostTicketPanelResult{MessageID: "panel-1"}, nil
}

func (m *mockTicketPanel) IsPanel(_ context.Context, messageID string) (bool, error) {
	return m.panels[messageID], nil
}

type mockWelcome struct {
	joins    []welcomeUsecases.MemberJoinCommand
	previews []string
}

func (m *mockWelcome) Execute(_ context.Context, cmd welcomeUsecases.MemberJoinCommand) (*welcomeUsecases.MemberJoinResult, error) {
	m.joins = append(m.joins, cmd)
	return &welcomeUsecases.MemberJoinResult{Posted: true, MessageID: "welcome-1"}, nil
}

func (m *mockWelcome) Preview(_ context.Context, channelID string, cmd welcomeUsecases.MemberJoinCommand) error {
	m.previews = append(m.previews, channelID+"/"+cmd.UserID)
	return nil
}

type mockVerify struct {
	calls []welcomeUsecases.VerifyCommand
}

func (m *mockVerify) Execute(_ context.Context, cmd welcomeUsecases.VerifyCommand) (*welcomeUsecases.VerificationResult, error) {
	m.calls = append(m.calls, cmd)
	return &welcomeUsecases.VerificationResult{Verified: true}, nil
}

type mockWelcomeStatus struct{}

func (mockWelcomeStatus) Execute(_ context.Context, _ string) (*welcomeUsecases.WelcomeStatus, error) {
	return &welcomeUsecases.WelcomeStatus{Settings: welcomeUsecases.Settings{ChannelID: "welcome"}, WelcomeChannelFound: true}, nil
}

type mockSyncMembers struct {
	batches int
	got     []memberUsecases.GuildMember
}

func (m *mockSyncMembers) Execute(_ context.Context, cmd memberUsecases.SyncMembersCommand) (*memberUsecases.SyncReport, error) {
	m.got = cmd.Members
	for i := 1; i <= m.batches; i++ {
		if cmd.Progress != nil {
			cmd.Progress(i, m.batches)
		}
	}
	return &memberUsecases.SyncReport{Processed: len(cmd.Members), Matched: 1, Batches: m.batches}, nil
}

type mockLinkedProfile map[string]int64

func (m mockLinkedProfile) Execute(_ context.Context, discordID string) (int64, error) {
	return m[discordID], nil
}

type mockGame struct {
	profiles     map[int64]*gameapi.Profile
	leaderboards []string
	stateErr     error
}

func (m *mockGame) FetchProfile(_ context.Context, id int64) (*gameapi.Profile, error) {
	return m.profiles[id], nil
}

func (m *mockGame) FetchCorporation(_ context.Context, id int64) (*gameapi.Corporation, error) {
	return nil, nil
}

func (m *mockGame) FetchLeaderboard(_ context.Context, page int, sort gameapi.LeaderboardSort, pageSize int) (*gameapi.Leaderboard, error) {
	m.leaderboards = append(m.leaderboards, string(sort)+"/"+itoa(page)+"/"+itoa(pageSize))
	return &gameapi.Leaderboard{
		Entries: []gameapi.LeaderboardEntry{{Rank: 11, PlayerName: "Ada", ProfileSlug: "ada", Cash: 100}},
		Total:   35,
		Page:    page,
	}, nil
}

func (m *mockGame) FetchGameTime(_ context.Context) (*gameapi.GameTime, error) {
	return &gameapi.GameTime{GameDate: "Jan 1, 1990", Tick: 10, MsToNextTick: 1000}, nil
}

func (m *mockGame) FetchState(_ context.Context, _ string) (*gameapi.State, error) {
	return nil, m.stateErr
}

func (m *mockGame) FetchCommodities(_ context.Context) ([]gameapi.Commodity, error) {
	return []gameapi.Commodity{{Name: "Oil", Price: 70.5, ChangePercent: 1.2}}, nil
}

type fakeMessenger struct {
	mu        sync.Mutex
	sent      []*discordgo.MessageSend
	deleted   []string
	unreacted []string
	members   []memberUsecases.GuildMember
}

func (f *fakeMessenger) Send(_ context.Context, channelID string, msg *discordgo.MessageSend) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return "selector-1", nil
}

func (f *fakeMessenger) DeleteMessage(_ context.Context, channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, channelID+"/"+messageID)
	return nil
}

func (f *fakeMessenger) RemoveReaction(_ context.Context, channelID, messageID, emoji, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unreacted = append(f.unreacted, messageID+"/"+emoji+"/"+userID)
	return nil
}

func (f *fakeMessenger) ListMembers(_ context.Context, _ string) ([]memberUsecases.GuildMember, error) {
	return f.members, nil
}

// harness bundles a bot with its mocks and a router it is registered on.
type harness struct {
	bot    *Bot
	router *interaction.Router

	create     *mockCreateTicket
	claim      *mockClaimTicket
	close      *mockCloseTicket
	transcript *mockTranscript
	delete     *mockDeleteTicket
	panel      *mockTicketPanel
	welcome    *mockWelcome
	verify     *mockVerify
	sync       *mockSyncMembers
	game       *mockGame
	messenger  *fakeMessenger

	delays []time.Duration
}

func newHarness() *harness {
	h := &harness{
		create:     &mockCreateTicket{},
		claim:      &mockClaimTicket{},
		close:      &mockCloseTicket{},
		transcript: &mockTranscript{},
		delete:     &mockDeleteTicket{},
		panel:      &mockTicketPanel{panels: map[string]bool{}},
		welcome:    &mockWelcome{},
		verify:     &mockVerify{},
		sync:       &mockSyncMembers{},
		game:       &mockGame{profiles: map[int64]*gameapi.Profile{}},
		messenger:  &fakeMessenger{},
	}
	log := logger.NewNopLogger()
	h.bot = New(Deps{
		CreateTicket:  h.create,
		ClaimTicket:   h.claim,
		CloseTicket:   h.close,
		Transcript:    h.transcript,
		DeleteTicket:  h.delete,
		TicketPanel:   h.panel,
		Welcome:       h.welcome,
		Verify:        h.verify,
		WelcomeStatus: mockWelcomeStatus{},
		SyncMembers:   h.sync,
		LinkedProfile: mockLinkedProfile{"linked": 42},
		Game:          h.game,
		Messenger:     h.messenger,
		Views:         views.New("Corporate Warfare", "https://cw.test"),
		Tickets: config.TicketConfig{
			ParentCategoryID: "parent",
			StaffRoleID:      "staff",
			DeleteDelay:      5 * time.Second,
			SelectorLifetime: time.Minute,
			Categories: []config.TicketCategory{
				{ID: "support", Label: "General Support", Emoji: "🎫"},
				{ID: "bug", Label: "Bug Report", Emoji: "🐛"},
			},
		},
		VerifyEmoji: "✅",
		Latency:     func() time.Duration { return 42 * time.Millisecond },
	}, log)
	h.bot.after = func(d time.Duration, fn func()) {
		h.delays = append(h.delays, d)
		fn()
	}
	h.router = interaction.NewRouter(log)
	h.bot.Register(h.router)
	return h
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
