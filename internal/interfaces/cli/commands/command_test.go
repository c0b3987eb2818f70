package commands

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord/views"
)

type fakeRegistrar struct {
	appID, guildID string
	commands       []*discordgo.ApplicationCommand
	err            error
}

func (f *fakeRegistrar) ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.appID, f.guildID, f.commands = appID, guildID, commands
	if f.err != nil {
		return nil, f.err
	}
	return commands, nil
}

func TestRegister_SendsWholeCatalog(t *testing.T) {
	r := &fakeRegistrar{}

	registered, err := Register(r, "app", "guild")
	require.NoError(t, err)

	assert.Equal(t, "app", r.appID)
	assert.Equal(t, "guild", r.guildID)
	assert.Len(t, registered, len(views.Definitions()))
}

func TestRegister_WrapsError(t *testing.T) {
	r := &fakeRegistrar{err: errors.New("401 Unauthorized")}

	_, err := Register(r, "app", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register commands")
}
