package discord

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// fakeREST records calls and serves canned data. failOn maps method names to
// the error they return.
type fakeREST struct {
	mu     sync.Mutex
	failOn map[string]error

	created     []discordgo.GuildChannelCreateData
	permissions []string
	sent        []*discordgo.MessageSend
	deleted     []string
	messages    []*discordgo.Message
	members     []*discordgo.Member
	memberCalls []string

	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	followups []*discordgo.WebhookParams
}

func newFakeREST() *fakeREST {
	return &fakeREST{failOn: make(map[string]error)}
}

func notFound() error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound}}
}

func (f *fakeREST) fail(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failOn[method]
}

func (f *fakeREST) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if err := f.fail("create"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, data)
	return &discordgo.Channel{ID: fmt.Sprintf("chan-%d", len(f.created)), GuildID: guildID, Name: data.Name}, nil
}

func (f *fakeREST) ChannelEdit(channelID string, data *discordgo.ChannelEdit, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: channelID, Name: data.Name}, f.fail("edit")
}

func (f *fakeREST) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if err := f.fail("channel"); err != nil {
		return nil, err
	}
	return &discordgo.Channel{ID: channelID, Name: "name-" + channelID}, nil
}

func (f *fakeREST) ChannelDelete(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if err := f.fail("channelDelete"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, channelID)
	return &discordgo.Channel{ID: channelID}, nil
}

func (f *fakeREST) ChannelMessagePin(_, _ string, _ ...discordgo.RequestOption) error {
	return f.fail("pin")
}

func (f *fakeREST) ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.permissions = append(f.permissions, fmt.Sprintf("%s/%s/%d/%d/%d", channelID, targetID, targetType, allow, deny))
	return f.failOn["permission"]
}

func (f *fakeREST) ChannelMessages(_ string, limit int, _, _, _ string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	if err := f.fail("messages"); err != nil {
		return nil, err
	}
	if len(f.messages) > limit {
		return f.messages[:limit], nil
	}
	return f.messages, nil
}

func (f *fakeREST) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if err := f.fail("send"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, data)
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", len(f.sent)), ChannelID: channelID}, nil
}

func (f *fakeREST) ChannelMessageDelete(_, messageID string, _ ...discordgo.RequestOption) error {
	if err := f.fail("messageDelete"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeREST) GuildMemberRoleAdd(_, _, _ string, _ ...discordgo.RequestOption) error {
	return f.fail("roleAdd")
}

func (f *fakeREST) GuildMemberRoleRemove(_, _, _ string, _ ...discordgo.RequestOption) error {
	return f.fail("roleRemove")
}

func (f *fakeREST) GuildMembers(_ string, after string, limit int, _ ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	if err := f.fail("members"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.memberCalls = append(f.memberCalls, after)

	start := 0
	if after != "" {
		for i, m := range f.members {
			if m.User.ID == after {
				start = i + 1
			}
		}
	}
	end := start + limit
	if end > len(f.members) {
		end = len(f.members)
	}
	return f.members[start:end], nil
}

func (f *fakeREST) MessageReactionAdd(_, _, _ string, _ ...discordgo.RequestOption) error {
	return f.fail("react")
}

func (f *fakeREST) MessageReactionRemove(_, _, _, _ string, _ ...discordgo.RequestOption) error {
	return f.fail("unreact")
}

func (f *fakeREST) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	if err := f.fail("respond"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeREST) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit)
	return &discordgo.Message{ID: "original"}, nil
}

func (f *fakeREST) InteractionResponseDelete(_ *discordgo.Interaction, _ ...discordgo.RequestOption) error {
	return nil
}

func (f *fakeREST) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.followups = append(f.followups, data)
	return &discordgo.Message{ID: fmt.Sprintf("followup-%d", len(f.followups))}, nil
}

func message(id, author, content string, at time.Time) *discordgo.Message {
	return &discordgo.Message{
		ID:        id,
		Author:    &discordgo.User{ID: author, Username: author},
		Content:   content,
		Timestamp: at,
	}
}
