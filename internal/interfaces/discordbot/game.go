package discordbot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord/views"
	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
)

const (
	msgNotLinked       = "❌ Your Discord account is not linked to a game profile. Use `/profile id:<number>` instead."
	msgTargetNotLinked = "❌ That member is not linked to a game profile."
	msgGameTimeFailed  = "❌ Failed to fetch game time."
	msgMarketFailed    = "❌ Failed to fetch commodity prices."
)

func embedResponse(embed *discordgo.MessageEmbed, components ...discordgo.MessageComponent) interaction.Response {
	return interaction.Response{Embeds: []*discordgo.MessageEmbed{embed}, Components: components}
}

func (b *Bot) profile(req *interaction.Request, ev *interaction.CommandEvent) error {
	id, ok := ev.IntOption("id")
	if !ok {
		linked, err := b.LinkedProfile.Execute(req.Ctx, ev.User.ID)
		if err != nil {
			return err
		}
		if linked == 0 {
			return reply(req.Ctx, ev.Responder, msgNotLinked, true)
		}
		id = linked
	}
	if err := ev.Responder.Defer(req.Ctx, false); err != nil {
		return err
	}
	return b.showProfile(req, ev.Responder, id)
}

// viewProfile shows the linked profile of the member the menu was opened on.
func (b *Bot) viewProfile(req *interaction.Request, ev *interaction.ContextMenuEvent) error {
	id, err := b.LinkedProfile.Execute(req.Ctx, ev.TargetID)
	if err != nil {
		return err
	}
	if id == 0 {
		return reply(req.Ctx, ev.Responder, msgTargetNotLinked, true)
	}
	if err := ev.Responder.Defer(req.Ctx, true); err != nil {
		return err
	}
	return b.showProfile(req, ev.Responder, id)
}

func (b *Bot) showProfile(req *interaction.Request, resp interaction.Responder, id int64) error {
	p, err := b.Game.FetchProfile(req.Ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return resp.Edit(req.Ctx, interaction.Response{Content: fmt.Sprintf("❌ Profile #%d not found.", id)})
	}
	return resp.Edit(req.Ctx, embedResponse(b.Views.Profile(p)))
}

func (b *Bot) corporation(req *interaction.Request, ev *interaction.CommandEvent) error {
	id, _ := ev.IntOption("id")
	if err := ev.Responder.Defer(req.Ctx, false); err != nil {
		return err
	}
	c, err := b.Game.FetchCorporation(req.Ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ev.Responder.Edit(req.Ctx, interaction.Response{Content: fmt.Sprintf("❌ Corporation #%d not found.", id)})
	}
	return ev.Responder.Edit(req.Ctx, embedResponse(b.Views.Corporation(c)))
}

func (b *Bot) leaderboard(req *interaction.Request, ev *interaction.CommandEvent) error {
	page := 1
	if p, ok := ev.IntOption("page"); ok && p > 1 {
		page = int(p)
	}
	opt := views.LookupSort(ev.StringOption("sort"))
	if err := ev.Responder.Defer(req.Ctx, false); err != nil {
		return err
	}
	return b.showLeaderboard(req, ev.Responder, opt, page)
}

// leaderboardPage serves the previous/next buttons. The sort and target page
// travel in the custom id.
func (b *Bot) leaderboardPage(req *interaction.Request, ev *interaction.ButtonEvent, arg string) error {
	opt, page, ok := views.ParseLeaderboardPage(arg)
	if !ok {
		return ev.Responder.DeferUpdate(req.Ctx)
	}
	if err := ev.Responder.DeferUpdate(req.Ctx); err != nil {
		return err
	}
	return b.showLeaderboard(req, ev.Responder, opt, page)
}

func (b *Bot) showLeaderboard(req *interaction.Request, resp interaction.Responder, opt views.SortOption, page int) error {
	lb, err := b.Game.FetchLeaderboard(req.Ctx, page, opt.Field, views.LeaderboardPageSize)
	if err != nil {
		return err
	}
	if lb == nil {
		return resp.Edit(req.Ctx, interaction.Response{Content: "❌ Leaderboard is not available right now."})
	}
	embed, row := b.Views.Leaderboard(lb, opt, page)
	return resp.Edit(req.Ctx, embedResponse(embed, row))
}

func (b *Bot) gameTime(req *interaction.Request, ev *interaction.CommandEvent) error {
	if err := ev.Responder.Defer(req.Ctx, false); err != nil {
		return err
	}
	t, err := b.Game.FetchGameTime(req.Ctx)
	if err != nil {
		req.Logger.Warnw("failed to fetch game time", "error", err)
	}
	if err != nil || t == nil {
		return ev.Responder.Edit(req.Ctx, interaction.Response{Content: msgGameTimeFailed})
	}
	return ev.Responder.Edit(req.Ctx, embedResponse(b.Views.GameTime(t)))
}

func (b *Bot) state(req *interaction.Request, ev *interaction.CommandEvent) error {
	code := strings.ToUpper(strings.TrimSpace(ev.StringOption("code")))
	if err := ev.Responder.Defer(req.Ctx, false); err != nil {
		return err
	}
	s, err := b.Game.FetchState(req.Ctx, code)
	if err != nil {
		req.Logger.Warnw("failed to fetch state", "code", code, "error", err)
	}
	if err != nil || s == nil {
		return ev.Responder.Edit(req.Ctx, interaction.Response{
			Content: fmt.Sprintf("❌ State **%s** not found or API error.", code),
		})
	}
	return ev.Responder.Edit(req.Ctx, embedResponse(b.Views.State(s, code)))
}

// market serves /market commodities.
func (b *Bot) market(req *interaction.Request, ev *interaction.CommandEvent) error {
	if ev.Subcommand != "" && ev.Subcommand != "commodities" {
		return fmt.Errorf("unknown market subcommand %q", ev.Subcommand)
	}
	if err := ev.Responder.Defer(req.Ctx, false); err != nil {
		return err
	}
	items, err := b.Game.FetchCommodities(req.Ctx)
	if err != nil {
		req.Logger.Warnw("failed to fetch commodities", "error", err)
		return ev.Responder.Edit(req.Ctx, interaction.Response{Content: msgMarketFailed})
	}
	return ev.Responder.Edit(req.Ctx, embedResponse(b.Views.Commodities(items)))
}
