package views

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	memberUsecases "github.com/corporatewarfare/cwbot/internal/application/member/usecases"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/gameapi"
)

// LeaderboardPageSize is the number of entries per leaderboard page.
const LeaderboardPageSize = 10

// SortOption is a leaderboard ordering offered to users.
type SortOption struct {
	Key   string
	Field gameapi.LeaderboardSort
	Label string
	Emoji string
}

var sortOptions = []SortOption{
	{Key: "wealth", Field: gameapi.SortNetWorth, Label: "Total Wealth", Emoji: "💰"},
	{Key: "cash", Field: gameapi.SortCash, Label: "Cash", Emoji: "💵"},
	{Key: "portfolio", Field: gameapi.SortPortfolioValue, Label: "Portfolio", Emoji: "📈"},
}

// SortOptions lists the leaderboard orderings in display order.
func SortOptions() []SortOption {
	return append([]SortOption(nil), sortOptions...)
}

// LookupSort resolves a user-facing key, falling back to total wealth.
func LookupSort(key string) SortOption {
	for _, o := range sortOptions {
		if o.Key == key {
			return o
		}
	}
	return sortOptions[0]
}

func (v *Views) profileURL(slug string) string {
	return v.siteURL + "/profile/" + slug
}

func (v *Views) corporationURL(id int64) string {
	return v.siteURL + "/corporation/" + strconv.FormatInt(id, 10)
}

func (v *Views) Profile(p *gameapi.Profile) *discordgo.MessageEmbed {
	color := ColorPrimary
	status := "⚫ Offline"
	if p.IsOnline {
		color = ColorSuccess
		status = "🟢 Online"
	}

	age := "Unknown"
	if p.Age != nil {
		age = strconv.Itoa(*p.Age)
	}

	embed := v.embed(p.PlayerName, color)
	embed.URL = v.profileURL(p.ProfileSlug)
	embed.Description = orDefault(p.Bio, "*No bio set*")
	embed.Fields = []*discordgo.MessageEmbedField{
		field("State", orDefault(p.StartingState, "Unknown"), true),
		field("Age", age, true),
		field("Gender", orDefault(p.Gender, "Unknown"), true),
		field("Actions", v.Number(p.Actions), true),
		field("Status", status, true),
		field("Net Worth", v.Money(p.NetWorth), true),
	}
	if !p.IsOnline && p.LastSeenAt != nil {
		embed.Fields = append(embed.Fields, field("Last Seen", RelativeTime(*p.LastSeenAt), true))
	}
	if p.CreatedAt != nil {
		embed.Fields = append(embed.Fields, field("Playing Since", LongDate(*p.CreatedAt), true))
	}
	if p.ProfileImageURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: p.ProfileImageURL}
	}
	embed.Footer.Text = fmt.Sprintf("Profile ID: %d • %s", p.ProfileID, v.footer)
	return embed
}

func (v *Views) Corporation(c *gameapi.Corporation) *discordgo.MessageEmbed {
	embed := v.embed("🏢 "+c.Name, ColorPrimary)
	embed.URL = v.corporationURL(c.ID)
	embed.Fields = []*discordgo.MessageEmbedField{
		field("🏛️ Type", orDefault(c.Type, "Unknown"), true),
		field("🏭 Sector", orDefault(c.Sector, "Unknown"), true),
		field("📍 HQ", orDefault(c.HQState, "Unknown"), true),
	}
	if c.Logo != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: c.Logo}
	}
	if c.CEO != nil {
		embed.Fields = append(embed.Fields, field("👔 CEO",
			fmt.Sprintf("[%s](%s)", c.CEO.PlayerName, v.profileURL(c.CEO.ProfileSlug)), true))
	}
	embed.Fields = append(embed.Fields,
		field("💰 Capital", v.Money(c.Capital), true),
		field("📊 Share Price", v.Money(c.SharePrice), true),
		field("📈 Shares", fmt.Sprintf("**Total:** %s\n**Public:** %s", v.Number(c.Shares), v.Number(c.PublicShares)), true),
	)
	if c.DividendPercentage > 0 {
		embed.Fields = append(embed.Fields, field("💵 Dividend", strconv.FormatFloat(c.DividendPercentage, 'f', -1, 64)+"%", true))
	}
	if top := v.topShareholders(c, 5); top != "" {
		embed.Fields = append(embed.Fields, field("👥 Top Shareholders", top, false))
	}
	if c.CreatedAt != nil {
		embed.Fields = append(embed.Fields, field("📅 Founded", LongDate(*c.CreatedAt), true))
	}
	embed.Footer.Text = fmt.Sprintf("Corporation ID: %d • %s", c.ID, v.footer)
	return embed
}

func (v *Views) topShareholders(c *gameapi.Corporation, limit int) string {
	holders := append([]gameapi.Shareholder(nil), c.Shareholders...)
	sort.SliceStable(holders, func(i, j int) bool { return holders[i].Shares > holders[j].Shares })
	if len(holders) > limit {
		holders = holders[:limit]
	}

	lines := make([]string, 0, len(holders))
	for i, sh := range holders {
		name := "Unknown"
		if sh.User != nil && sh.User.PlayerName != "" {
			name = sh.User.PlayerName
		}
		pct := 0.0
		if c.Shares > 0 {
			pct = float64(sh.Shares) / float64(c.Shares) * 100
		}
		lines = append(lines, fmt.Sprintf("%d. **%s** - %s (%.1f%%)", i+1, name, v.Number(sh.Shares), pct))
	}
	return strings.Join(lines, "\n")
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

// TotalPages is at least 1 so an empty board still renders "Page 1/1".
func TotalPages(total int) int {
	pages := (total + LeaderboardPageSize - 1) / LeaderboardPageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func (v *Views) Leaderboard(lb *gameapi.Leaderboard, opt SortOption, page int) (*discordgo.MessageEmbed, discordgo.ActionsRow) {
	pages := TotalPages(lb.Total)
	embed := v.embed("🏆 "+opt.Label+" Leaderboard", ColorPrimary)
	embed.Footer.Text = fmt.Sprintf("Page %d/%d • %s players • %s", page, pages, v.Number(int64(lb.Total)), v.footer)

	if len(lb.Entries) == 0 {
		embed.Description = "No players found."
	} else {
		lines := make([]string, 0, len(lb.Entries))
		for _, e := range lb.Entries {
			var value float64
			switch opt.Field {
			case gameapi.SortCash:
				value = e.Cash
			case gameapi.SortPortfolioValue:
				value = e.PortfolioValue
			default:
				value = e.NetWorth
			}
			player := fmt.Sprintf("[%s](%s)", e.PlayerName, v.profileURL(e.ProfileSlug))
			if m := medal(e.Rank); m != "" {
				lines = append(lines, fmt.Sprintf("#%d %s %s\n%s %s", e.Rank, m, player, opt.Emoji, v.Money(value)))
			} else {
				lines = append(lines, fmt.Sprintf("#%d %s - %s", e.Rank, player, v.Money(value)))
			}
		}
		embed.Description = strings.Join(lines, "\n\n")
	}

	return embed, buttonRow(
		discordgo.Button{
			Label:    "Previous",
			Style:    discordgo.SecondaryButton,
			CustomID: fmt.Sprintf("%s:%s:%d", IDLeaderboardPage, opt.Key, page-1),
			Emoji:    emoji("◀️"),
			Disabled: page <= 1,
		},
		discordgo.Button{
			Label:    fmt.Sprintf("Page %d/%d", page, pages),
			Style:    discordgo.PrimaryButton,
			CustomID: IDLeaderboardPage + ":current",
			Disabled: true,
		},
		discordgo.Button{
			Label:    "Next",
			Style:    discordgo.SecondaryButton,
			CustomID: fmt.Sprintf("%s:%s:%d", IDLeaderboardPage, opt.Key, page+1),
			Emoji:    emoji("▶️"),
			Disabled: page >= pages,
		},
	)
}

// ParseLeaderboardPage reads the "sort:page" argument of a pagination
// button.
func ParseLeaderboardPage(arg string) (SortOption, int, bool) {
	key, pageStr, ok := strings.Cut(arg, ":")
	if !ok {
		return SortOption{}, 0, false
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return SortOption{}, 0, false
	}
	return LookupSort(key), page, true
}

func (v *Views) GameTime(t *gameapi.GameTime) *discordgo.MessageEmbed {
	next := v.now().Add(time.Duration(t.MsToNextTick) * time.Millisecond)
	embed := v.embed("🕒 Corporate Warfare Time", ColorPrimary)
	embed.Fields = []*discordgo.MessageEmbedField{
		field("Game Date", orDefault(t.GameDate, "Unknown"), true),
		field("Tick", strconv.FormatInt(t.Tick, 10), true),
		field("Next Tick", RelativeTime(next), true),
	}
	return embed
}

func formatOptional(p *float64, format func(float64) string, fallback string) string {
	if p == nil || *p == 0 {
		return fallback
	}
	return format(*p)
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v *Views) State(s *gameapi.State, code string) *discordgo.MessageEmbed {
	name := orDefault(s.Name, code)
	embed := v.embed("🗺️ Market Data: "+name, ColorPrimary)
	embed.Description = fmt.Sprintf("Market conditions for **%s** (%s)", name, code)
	embed.Fields = []*discordgo.MessageEmbedField{
		field("🏛️ Tax Rate", formatOptional(s.TaxRate, func(f float64) string { return trimFloat(f) + "%" }, "N/A"), true),
		field("👥 Population", v.Number(s.Population), true),
		field("👷 Labor Cost", formatOptional(s.LaborCost, func(f float64) string { return "$" + trimFloat(f) + "/hr" }, "N/A"), true),
		field("📈 Demand Mod", formatOptional(s.DemandModifier, func(f float64) string { return trimFloat(f) + "x" }, "1.0x"), true),
		field("🏭 Industry", orDefault(s.DominantIndustry, "Diversified"), true),
	}
	if len(s.Resources) > 0 {
		lines := make([]string, 0, len(s.Resources))
		for _, r := range s.Resources {
			lines = append(lines, fmt.Sprintf("• %s: %s", r.Name, orDefault(r.Abundance, "Normal")))
		}
		embed.Fields = append(embed.Fields, field("⛏️ Key Resources", truncate(strings.Join(lines, "\n"), 1024), false))
	}
	return embed
}

func trend(percent float64) string {
	switch {
	case percent > 5:
		return "🚀"
	case percent > 0:
		return "📈"
	case percent < -5:
		return "📉"
	case percent < 0:
		return "🔻"
	}
	return "➖"
}

// commoditySplit is the list length above which prices are split into two
// columns.
const commoditySplit = 15

func (v *Views) Commodities(items []gameapi.Commodity) *discordgo.MessageEmbed {
	embed := v.embed("📦 Global Commodity Prices", ColorPrimary)
	if len(items) == 0 {
		embed.Description = "No commodities found."
		return embed
	}

	lines := make([]string, 0, len(items))
	for _, c := range items {
		change := ""
		if c.ChangePercent != 0 {
			sign := ""
			if c.ChangePercent > 0 {
				sign = "+"
			}
			change = sign + trimFloat(c.ChangePercent) + "%"
		}
		lines = append(lines, fmt.Sprintf("**%s**: %s %s `%s`", c.Name, v.Money(c.Price), trend(c.ChangePercent), change))
	}

	if len(lines) > commoditySplit {
		mid := (len(lines) + 1) / 2
		embed.Description = "Current global market averages per unit"
		embed.Fields = []*discordgo.MessageEmbedField{
			field("Part 1", truncate(strings.Join(lines[:mid], "\n"), 1024), true),
			field("Part 2", truncate(strings.Join(lines[mid:], "\n"), 1024), true),
		}
		return embed
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}

func (v *Views) SyncReport(r *memberUsecases.SyncReport) *discordgo.MessageEmbed {
	color := ColorSuccess
	if r.Errors > 0 {
		color = ColorWarning
	}
	embed := v.embed("Sync Complete", color)
	embed.Fields = []*discordgo.MessageEmbedField{
		field("Total Processed", v.Number(int64(r.Processed)), true),
		field("Matched Users", v.Number(int64(r.Matched)), true),
		field("Unmatched", v.Number(int64(r.Unmatched)), true),
		field("Batches", strconv.Itoa(r.Batches), true),
		field("Errors", strconv.Itoa(r.Errors), true),
	}
	return embed
}

func (v *Views) Pong(roundTrip, gateway time.Duration) *discordgo.MessageEmbed {
	embed := v.embed("Pong!", ColorSuccess)
	embed.Fields = []*discordgo.MessageEmbedField{
		field("Bot Latency", fmt.Sprintf("%dms", roundTrip.Milliseconds()), true),
		field("API Latency", fmt.Sprintf("%dms", gateway.Milliseconds()), true),
	}
	return embed
}
