// Package transcript renders a ticket channel's history as text and HTML.
package transcript

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// FetchLimit is the number of most recent messages included.
const FetchLimit = 100

type Message struct {
	ID          string
	AuthorTag   string
	Content     string
	Attachments []string
	EmbedCount  int
	CreatedAt   time.Time
}

// Header is the ticket metadata printed above the log.
type Header struct {
	Number      int
	ChannelName string
	GeneratedAt time.Time
	Status      string
	CreatorID   string
	ClaimedBy   string
	Subject     string
}

// Content is the text shown for a message in the log.
func Content(m Message) string {
	content := m.Content
	if len(m.Attachments) > 0 {
		list := strings.Join(m.Attachments, ", ")
		if content != "" {
			content += " [Attachments: " + list + "]"
		} else {
			content = "[Attachments: " + list + "]"
		}
	}
	if content == "" && m.EmbedCount > 0 {
		content = "[Embed]"
	}
	if content == "" {
		return "[Empty message]"
	}
	return content
}

func writeHeader(b *strings.Builder, h Header) {
	b.WriteString("# Ticket Transcript\n")
	fmt.Fprintf(b, "**Ticket:** #%d\n", h.Number)
	fmt.Fprintf(b, "**Channel:** %s\n", h.ChannelName)
	fmt.Fprintf(b, "**Generated:** %s\n", h.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(b, "**Status:** %s\n", h.Status)
	fmt.Fprintf(b, "**Created By:** %s\n", h.CreatorID)
	if h.ClaimedBy != "" {
		fmt.Fprintf(b, "**Claimed By:** %s\n", h.ClaimedBy)
	}
	if h.Subject != "" {
		fmt.Fprintf(b, "**Subject:** %s\n", h.Subject)
	}
	b.WriteString("\n---\n\n")
}

// Text renders the plain transcript. messages are newest first, as the
// platform returns them; the log is printed oldest first.
func Text(h Header, messages []Message) string {
	var b strings.Builder
	writeHeader(&b, h)
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		fmt.Fprintf(&b, "[%s] %s: %s\n", m.CreatedAt.UTC().Format(time.RFC3339), m.AuthorTag, Content(m))
	}
	return b.String()
}

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	policy = bluemonday.UGCPolicy()
)

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Ticket #%d Transcript</title>
<style>
body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
hr { border: 0; border-top: 1px solid #5865F2; }
li { padding: 6px 0; border-bottom: 1px solid #eee; list-style: none; }
code { color: #666; font-size: 12px; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTML renders the transcript as a standalone page. Message bodies are
// markdown from Discord users, so the rendered fragment is sanitised.
func HTML(h Header, messages []Message) (string, error) {
	var src strings.Builder
	writeHeader(&src, h)
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		fmt.Fprintf(&src, "- `%s` **%s**: %s\n",
			m.CreatedAt.UTC().Format(time.RFC3339),
			escapeMarkdown(m.AuthorTag),
			strings.ReplaceAll(Content(m), "\n", "\n  "))
	}

	var out bytes.Buffer
	if err := markdown.Convert([]byte(src.String()), &out); err != nil {
		return "", fmt.Errorf("failed to render transcript: %w", err)
	}

	return fmt.Sprintf(page, h.Number, policy.SanitizeBytes(out.Bytes())), nil
}

func escapeMarkdown(s string) string {
	r := strings.NewReplacer("*", `\*`, "_", `\_`, "`", "\\`")
	return r.Replace(html.EscapeString(s))
}
