package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
)

type roleCall struct {
	Op      string
	GuildID string
	UserID  string
	RoleID  string
}

type fakeMemberPlatform struct {
	mu        sync.Mutex
	channels  map[string]bool
	failOn    map[string]error
	roleCalls []roleCall
	reactions []string
}

func newFakeMemberPlatform(channels ...string) *fakeMemberPlatform {
	p := &fakeMemberPlatform{channels: map[string]bool{}, failOn: map[string]error{}}
	for _, c := range channels {
		p.channels[c] = true
	}
	return p
}

func (p *fakeMemberPlatform) AddRole(_ context.Context, guildID, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roleCalls = append(p.roleCalls, roleCall{Op: "add", GuildID: guildID, UserID: userID, RoleID: roleID})
	return p.failOn["add"]
}

func (p *fakeMemberPlatform) RemoveRole(_ context.Context, guildID, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roleCalls = append(p.roleCalls, roleCall{Op: "remove", GuildID: guildID, UserID: userID, RoleID: roleID})
	return p.failOn["remove"]
}

func (p *fakeMemberPlatform) ChannelExists(_ context.Context, channelID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failOn["channel"]; err != nil {
		return false, err
	}
	return p.channels[channelID], nil
}

func (p *fakeMemberPlatform) AddReaction(_ context.Context, channelID, messageID, emoji string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failOn["react"]; err != nil {
		return err
	}
	p.reactions = append(p.reactions, messageID+":"+emoji)
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	err   error
	sent  []notice.Notice
	chans []string
}

func (n *fakeNotifier) Notify(_ context.Context, channelID string, nt notice.Notice) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return "", n.err
	}
	n.sent = append(n.sent, nt)
	n.chans = append(n.chans, channelID)
	return fmt.Sprintf("msg-%d", len(n.sent)), nil
}
