// Package views builds the Discord embeds, components and modals the bot
// sends.
package views

import (
	"math"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	ColorPrimary = 0x5865F2
	ColorSuccess = 0x57F287
	ColorWarning = 0xFEE75C
	ColorError   = 0xED4245

	ColorTicketOpen    = 0x57F287
	ColorTicketClaimed = 0x5865F2
	ColorTicketClosed  = 0xED4245
)

const (
	EmojiTicket     = "🎫"
	EmojiClaim      = "✋"
	EmojiClose      = "🔒"
	EmojiTranscript = "📝"
	EmojiDelete     = "🗑️"
	EmojiSuccess    = "✅"
	EmojiError      = "❌"
	EmojiWarning    = "⚠️"
	EmojiInfo       = "ℹ️"
	EmojiLoading    = "⏳"
	EmojiAdmin      = "⚙️"
	EmojiUtility    = "🔧"
	EmojiFolder     = "📁"
	EmojiHelp       = "📚"
)

// Views renders messages with a shared footer and number formatting.
type Views struct {
	footer  string
	siteURL string
	printer *message.Printer
	now     func() time.Time
}

func New(footer, siteURL string) *Views {
	if footer == "" {
		footer = "Corporate Warfare"
	}
	return &Views{
		footer:  footer,
		siteURL: siteURL,
		printer: message.NewPrinter(language.English),
		now:     time.Now,
	}
}

func (v *Views) Footer() string {
	return v.footer
}

// embed starts an embed with the default footer and the current timestamp.
func (v *Views) embed(title string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     title,
		Color:     color,
		Footer:    &discordgo.MessageEmbedFooter{Text: v.footer},
		Timestamp: v.now().UTC().Format(time.RFC3339),
	}
}

// Number groups thousands: 1234567 becomes "1,234,567".
func (v *Views) Number(n int64) string {
	return v.printer.Sprintf("%d", n)
}

// Money formats amount as dollars, keeping cents only when there are any.
func (v *Views) Money(amount float64) string {
	if amount == math.Trunc(amount) && math.Abs(amount) < 1e15 {
		return "$" + v.printer.Sprintf("%d", int64(amount))
	}
	return "$" + v.printer.Sprintf("%.2f", amount)
}

// RelativeTime renders a timestamp Discord shows as "in 5 minutes".
func RelativeTime(t time.Time) string {
	return "<t:" + strconv.FormatInt(t.Unix(), 10) + ":R>"
}

// LongDate renders a timestamp Discord shows as a date.
func LongDate(t time.Time) string {
	return "<t:" + strconv.FormatInt(t.Unix(), 10) + ":D>"
}

func UserMention(id string) string {
	return "<@" + id + ">"
}

func RoleMention(id string) string {
	return "<@&" + id + ">"
}

func ChannelMention(id string) string {
	return "<#" + id + ">"
}

func field(name, value string, inline bool) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func buttonRow(buttons ...discordgo.Button) discordgo.ActionsRow {
	components := make([]discordgo.MessageComponent, 0, len(buttons))
	for _, b := range buttons {
		components = append(components, b)
	}
	return discordgo.ActionsRow{Components: components}
}

func emoji(name string) *discordgo.ComponentEmoji {
	if name == "" {
		return nil
	}
	return &discordgo.ComponentEmoji{Name: name}
}
