package discordbot

import (
	"fmt"
	"time"

	memberUsecases "github.com/corporatewarfare/cwbot/internal/application/member/usecases"
	welcomeUsecases "github.com/corporatewarfare/cwbot/internal/application/welcome/usecases"
	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
)

func (b *Bot) ping(req *interaction.Request, ev *interaction.CommandEvent) error {
	start := time.Now()
	if err := reply(req.Ctx, ev.Responder, "Pinging...", false); err != nil {
		return err
	}
	roundTrip := time.Since(start)
	return ev.Responder.Edit(req.Ctx, embedResponse(b.Views.Pong(roundTrip, b.Latency())))
}

// sync links guild members to game profiles, editing the reply as it goes.
func (b *Bot) sync(req *interaction.Request, ev *interaction.CommandEvent) error {
	if err := ev.Responder.Defer(req.Ctx, true); err != nil {
		return err
	}
	progress := func(content string) {
		if err := ev.Responder.Edit(req.Ctx, interaction.Response{Content: content}); err != nil {
			req.Logger.Warnw("failed to update sync progress", "error", err)
		}
	}

	progress("⏳ Fetching guild members...")
	members, err := b.Messenger.ListMembers(req.Ctx, ev.GuildID)
	if err != nil {
		return err
	}

	progress(fmt.Sprintf("⏳ Syncing %d members...", len(members)))
	report, err := b.SyncMembers.Execute(req.Ctx, memberUsecases.SyncMembersCommand{
		GuildID: ev.GuildID,
		Members: members,
		Progress: func(batch, total int) {
			progress(fmt.Sprintf("⏳ Processing batch %d/%d...", batch, total))
		},
	})
	if err != nil {
		return err
	}
	req.Logger.Infow("member sync finished",
		"processed", report.Processed, "matched", report.Matched, "errors", report.Errors)
	return ev.Responder.Edit(req.Ctx, embedResponse(b.Views.SyncReport(report)))
}

func (b *Bot) welcomeCommand(req *interaction.Request, ev *interaction.CommandEvent) error {
	switch ev.Subcommand {
	case "status":
		if err := ev.Responder.Defer(req.Ctx, true); err != nil {
			return err
		}
		status, err := b.WelcomeStatus.Execute(req.Ctx, ev.GuildID)
		if err != nil {
			return err
		}
		return ev.Responder.Edit(req.Ctx, embedResponse(b.Views.WelcomeStatus(status)))
	case "test":
		return b.welcomeTest(req, ev)
	}
	return fmt.Errorf("unknown welcome subcommand %q", ev.Subcommand)
}

// welcomeTest posts the welcome notice for the caller into the current
// channel.
func (b *Bot) welcomeTest(req *interaction.Request, ev *interaction.CommandEvent) error {
	if err := ev.Responder.Reply(req.Ctx, interaction.Response{Content: "**Preview of welcome message:**"}); err != nil {
		return err
	}
	cmd := welcomeUsecases.MemberJoinCommand{
		GuildID:  ev.GuildID,
		UserID:   ev.User.ID,
		Username: ev.User.Username,
	}
	if b.GuildInfo != nil {
		cmd.GuildName, cmd.MemberCount = b.GuildInfo(ev.GuildID)
	}
	return b.Welcome.Preview(req.Ctx, ev.ChannelID, cmd)
}

