package interaction

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

type Response struct {
	Content    string
	Ephemeral  bool
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Files      []*discordgo.File
}

type Modal struct {
	CustomID   string
	Title      string
	Components []discordgo.MessageComponent
}

type Choice struct {
	Name  string
	Value any
}

// Responder answers one interaction. Discord accepts exactly one initial
// response (Reply, Defer, DeferUpdate, Update, ShowModal or Autocomplete);
// Edit and Followup come after it.
type Responder interface {
	// CanReply is false when the interaction cannot carry a message, as with
	// autocomplete.
	CanReply() bool
	// Replied reports whether a message or modal was sent.
	Replied() bool
	// Deferred reports whether the interaction was acknowledged without a
	// message yet.
	Deferred() bool

	Reply(ctx context.Context, r Response) error
	Defer(ctx context.Context, ephemeral bool) error
	DeferUpdate(ctx context.Context) error
	// Update edits the message the component is attached to.
	Update(ctx context.Context, r Response) error
	// Edit replaces the original response.
	Edit(ctx context.Context, r Response) error
	Followup(ctx context.Context, r Response) (string, error)
	ShowModal(ctx context.Context, m Modal) error
	Autocomplete(ctx context.Context, choices []Choice) error
	DeleteOriginal(ctx context.Context) error
}

// Notify sends r as the first message when nothing was sent yet: a reply
// when the interaction is unanswered, an edit of the pending response when
// it was deferred. It reports whether anything was sent.
func Notify(ctx context.Context, resp Responder, r Response) (bool, error) {
	if resp == nil || !resp.CanReply() || resp.Replied() {
		return false, nil
	}
	if resp.Deferred() {
		return true, resp.Edit(ctx, r)
	}
	return true, resp.Reply(ctx, r)
}

// Send replies to an unanswered interaction and follows up otherwise.
func Send(ctx context.Context, resp Responder, r Response) error {
	switch {
	case !resp.Replied() && !resp.Deferred():
		return resp.Reply(ctx, r)
	case resp.Deferred() && !resp.Replied():
		return resp.Edit(ctx, r)
	}
	_, err := resp.Followup(ctx, r)
	return err
}
