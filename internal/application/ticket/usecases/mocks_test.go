package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
	"github.com/corporatewarfare/cwbot/internal/application/ticket/transcript"
	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
	vo "github.com/corporatewarfare/cwbot/internal/domain/ticket/valueobjects"
)

type mockTicketRepository struct {
	CreateFunc            func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc           func(ctx context.Context, id uint) (*ticket.Ticket, error)
	GetByChannelIDFunc    func(ctx context.Context, channelID string) (*ticket.Ticket, error)
	ListByGuildFunc       func(ctx context.Context, guildID string, filter ticket.ListFilter) ([]*ticket.Ticket, error)
	ListByCreatorFunc     func(ctx context.Context, guildID, creatorID string) ([]*ticket.Ticket, error)
	MaxNumberFunc         func(ctx context.Context, guildID string) (int, error)
	SaveClaimFunc         func(ctx context.Context, t *ticket.Ticket) (bool, error)
	SaveCloseFunc         func(ctx context.Context, t *ticket.Ticket) (bool, error)
	DeleteByChannelIDFunc func(ctx context.Context, channelID string) (bool, error)
	CountFunc             func(ctx context.Context, guildID string, status *vo.TicketStatus) (int64, error)
	CountByStatusFunc     func(ctx context.Context, guildID string) (map[vo.TicketStatus]int64, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByChannelID(ctx context.Context, channelID string) (*ticket.Ticket, error) {
	if m.GetByChannelIDFunc != nil {
		return m.GetByChannelIDFunc(ctx, channelID)
	}
	return nil, nil
}

func (m *mockTicketRepository) ListByGuild(ctx context.Context, guildID string, filter ticket.ListFilter) ([]*ticket.Ticket, error) {
	if m.ListByGuildFunc != nil {
		return m.ListByGuildFunc(ctx, guildID, filter)
	}
	return nil, nil
}

func (m *mockTicketRepository) ListByCreator(ctx context.Context, guildID, creatorID string) ([]*ticket.Ticket, error) {
	if m.ListByCreatorFunc != nil {
		return m.ListByCreatorFunc(ctx, guildID, creatorID)
	}
	return nil, nil
}

func (m *mockTicketRepository) MaxNumber(ctx context.Context, guildID string) (int, error) {
	if m.MaxNumberFunc != nil {
		return m.MaxNumberFunc(ctx, guildID)
	}
	return 0, nil
}

func (m *mockTicketRepository) SaveClaim(ctx context.Context, t *ticket.Ticket) (bool, error) {
	if m.SaveClaimFunc != nil {
		return m.SaveClaimFunc(ctx, t)
	}
	return true, nil
}

func (m *mockTicketRepository) SaveClose(ctx context.Context, t *ticket.Ticket) (bool, error) {
	if m.SaveCloseFunc != nil {
		return m.SaveCloseFunc(ctx, t)
	}
	return true, nil
}

func (m *mockTicketRepository) DeleteByChannelID(ctx context.Context, channelID string) (bool, error) {
	if m.DeleteByChannelIDFunc != nil {
		return m.DeleteByChannelIDFunc(ctx, channelID)
	}
	return true, nil
}

func (m *mockTicketRepository) Count(ctx context.Context, guildID string, status *vo.TicketStatus) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, guildID, status)
	}
	return 0, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context, guildID string) (map[vo.TicketStatus]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, guildID)
	}
	return map[vo.TicketStatus]int64{}, nil
}

// fakePlatform records every call and fails the ones named in failOn.
type fakePlatform struct {
	mu       sync.Mutex
	nextID   int
	failOn   map[string]error
	channels map[string]*Channel
	specs    []ChannelSpec
	pinned   []string
	revoked  []string
	deleted  []string
	renamed  []string
	messages map[string][]transcript.Message
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		failOn:   map[string]error{},
		channels: map[string]*Channel{},
		messages: map[string][]transcript.Message{},
	}
}

func (p *fakePlatform) fail(op string) error {
	return p.failOn[op]
}

func (p *fakePlatform) CreateTicketChannel(_ context.Context, spec ChannelSpec) (*Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.fail("create"); err != nil {
		return nil, err
	}
	p.nextID++
	ch := &Channel{ID: fmt.Sprintf("chan-%d", p.nextID), Name: spec.Name}
	p.channels[ch.ID] = ch
	p.specs = append(p.specs, spec)
	return &Channel{ID: ch.ID, Name: ch.Name}, nil
}

func (p *fakePlatform) RenameChannel(_ context.Context, channelID, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.fail("rename"); err != nil {
		return err
	}
	if ch, ok := p.channels[channelID]; ok {
		ch.Name = name
	}
	p.renamed = append(p.renamed, name)
	return nil
}

func (p *fakePlatform) GetChannel(_ context.Context, channelID string) (*Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.fail("get"); err != nil {
		return nil, err
	}
	ch, ok := p.channels[channelID]
	if !ok {
		return nil, nil
	}
	return &Channel{ID: ch.ID, Name: ch.Name}, nil
}

func (p *fakePlatform) PinMessage(_ context.Context, channelID, messageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.fail("pin"); err != nil {
		return err
	}
	p.pinned = append(p.pinned, messageID)
	return nil
}

func (p *fakePlatform) RevokeSendPermission(_ context.Context, channelID, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.fail("revoke"); err != nil {
		return err
	}
	p.revoked = append(p.revoked, channelID+":"+userID)
	return nil
}

func (p *fakePlatform) FetchMessages(_ context.Context, channelID string, limit int) ([]transcript.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.fail("fetch"); err != nil {
		return nil, err
	}
	msgs := p.messages[channelID]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (p *fakePlatform) DeleteChannel(_ context.Context, channelID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.fail("delete"); err != nil {
		return err
	}
	delete(p.channels, channelID)
	p.deleted = append(p.deleted, channelID)
	return nil
}

type sentNotice struct {
	ChannelID string
	Notice    notice.Notice
}

type fakeNotifier struct {
	mu   sync.Mutex
	err  error
	sent []sentNotice
}

func (n *fakeNotifier) Notify(_ context.Context, channelID string, nt notice.Notice) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return "", n.err
	}
	n.sent = append(n.sent, sentNotice{ChannelID: channelID, Notice: nt})
	return fmt.Sprintf("msg-%d", len(n.sent)), nil
}

func (n *fakeNotifier) kinds() []notice.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notice.Kind, 0, len(n.sent))
	for _, s := range n.sent {
		out = append(out, s.Notice.Kind)
	}
	return out
}
