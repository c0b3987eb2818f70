package discordbot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction/testutil"
)

func base(r *testutil.Recorder) interaction.Base {
	return interaction.Base{
		ID:        "i1",
		GuildID:   "g1",
		ChannelID: "chan",
		User:      interaction.User{ID: "alice", Username: "alice"},
		Responder: r,
	}
}

func command(r *testutil.Recorder, name string, options map[string]any) *interaction.CommandEvent {
	if options == nil {
		options = map[string]any{}
	}
	return &interaction.CommandEvent{Base: base(r), Name: name, Options: options}
}

func button(r *testutil.Recorder, customID string) *interaction.ButtonEvent {
	return &interaction.ButtonEvent{Base: base(r), CustomID: customID, MessageID: "m1"}
}

func (h *harness) route(t *testing.T, ev interaction.Event) {
	t.Helper()
	require.NoError(t, h.router.Route(context.Background(), ev))
}
