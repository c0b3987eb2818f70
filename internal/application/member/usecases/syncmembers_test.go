package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corporatewarfare/cwbot/internal/infrastructure/database/sqlitetest"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/gameapi"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/repository"
	"github.com/corporatewarfare/cwbot/internal/shared/db"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

type mockMemberSyncer struct {
	SyncUsersFunc func(ctx context.Context, guildID string, batch []gameapi.SyncMember) (*gameapi.SyncResult, error)
	batchSizes    []int
}

func (m *mockMemberSyncer) SyncUsers(ctx context.Context, guildID string, batch []gameapi.SyncMember) (*gameapi.SyncResult, error) {
	m.batchSizes = append(m.batchSizes, len(batch))
	return m.SyncUsersFunc(ctx, guildID, batch)
}

func members(n int) []GuildMember {
	out := make([]GuildMember, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, GuildMember{ID: fmt.Sprintf("d%d", i), Username: fmt.Sprintf("user%d", i)})
	}
	return out
}

func TestSyncMembersUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserMappingRepository(sqlitetest.Open(t))

	calls := 0
	api := &mockMemberSyncer{SyncUsersFunc: func(ctx context.Context, guildID string, batch []gameapi.SyncMember) (*gameapi.SyncResult, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("timeout")
		}
		first := batch[0]
		return &gameapi.SyncResult{
			Success: true,
			Summary: gameapi.SyncSummary{Matched: 1, Unmatched: len(batch) - 1},
			Matched: []gameapi.MatchedUser{{
				DiscordID:  first.ID,
				ProfileID:  int64(100 + calls),
				PlayerName: "P" + first.ID,
				Raw:        []byte(`{"discord_id":"` + first.ID + `"}`),
			}},
		}, nil
	}}

	all := append(members(2500), GuildMember{ID: "bot", Bot: true})
	var progress []int

	report, err := NewSyncMembersUseCase(api, repo, logger.NewNopLogger()).Execute(ctx, SyncMembersCommand{
		GuildID:  "G",
		Members:  all,
		Progress: func(batch, total int) { progress = append(progress, batch) },
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1000, 1000, 500}, api.batchSizes)
	assert.Equal(t, []int{1, 2, 3}, progress)
	assert.Equal(t, 2500, report.Processed)
	assert.Equal(t, 3, report.Batches)
	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, 2, report.Matched)
	assert.Equal(t, 2, report.Stored)

	m, err := repo.GetByDiscordID(ctx, "d0")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, int64(101), m.ProfileID)

	linked, err := NewGetLinkedProfileUseCase(repo, logger.NewNopLogger()).Execute(ctx, "d2000")
	require.NoError(t, err)
	assert.Equal(t, int64(103), linked)

	unlinked, err := NewGetLinkedProfileUseCase(repo, logger.NewNopLogger()).Execute(ctx, "d5")
	require.NoError(t, err)
	assert.Zero(t, unlinked)
}

func TestSyncMembersUseCase_Execute_NoHumans(t *testing.T) {
	api := &mockMemberSyncer{SyncUsersFunc: func(ctx context.Context, guildID string, batch []gameapi.SyncMember) (*gameapi.SyncResult, error) {
		t.Fatal("no batch expected")
		return nil, nil
	}}

	report, err := NewSyncMembersUseCase(api, nil, logger.NewNopLogger()).
		Execute(context.Background(), SyncMembersCommand{GuildID: "G", Members: []GuildMember{{ID: "b", Bot: true}}})

	require.NoError(t, err)
	assert.Zero(t, report.Batches)
	assert.Zero(t, report.Processed)
}

func TestSyncMembersUseCase_Execute_UnsuccessfulResultCountsAsError(t *testing.T) {
	api := &mockMemberSyncer{SyncUsersFunc: func(ctx context.Context, guildID string, batch []gameapi.SyncMember) (*gameapi.SyncResult, error) {
		return &gameapi.SyncResult{Success: false}, nil
	}}

	report, err := NewSyncMembersUseCase(api, nil, logger.NewNopLogger()).
		Execute(context.Background(), SyncMembersCommand{GuildID: "G", Members: members(3)})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Errors)
	assert.Zero(t, report.Stored)
}

func TestSyncMembersUseCase_Execute_StoresBatchInTransaction(t *testing.T) {
	ctx := context.Background()
	gdb := sqlitetest.Open(t)
	repo := repository.NewUserMappingRepository(gdb)

	api := &mockMemberSyncer{SyncUsersFunc: func(ctx context.Context, guildID string, batch []gameapi.SyncMember) (*gameapi.SyncResult, error) {
		matched := make([]gameapi.MatchedUser, 0, len(batch))
		for i, m := range batch {
			matched = append(matched, gameapi.MatchedUser{DiscordID: m.ID, ProfileID: int64(i + 1)})
		}
		return &gameapi.SyncResult{
			Success: true,
			Summary: gameapi.SyncSummary{Matched: len(matched)},
			Matched: matched,
		}, nil
	}}

	report, err := NewSyncMembersUseCase(api, repo, logger.NewNopLogger()).
		WithTransactor(db.NewTransactionManager(gdb)).
		Execute(ctx, SyncMembersCommand{GuildID: "G", Members: members(3)})

	require.NoError(t, err)
	assert.Equal(t, 3, report.Stored)
	assert.Zero(t, report.Errors)

	linked, err := NewGetLinkedProfileUseCase(repo, logger.NewNopLogger()).Execute(ctx, "d2")
	require.NoError(t, err)
	assert.Equal(t, int64(3), linked)
}

type failingTransactor struct{}

func (failingTransactor) RunInTransaction(context.Context, func(ctx context.Context) error) error {
	return errors.New("database is locked")
}

func TestSyncMembersUseCase_Execute_FailedTransactionCountsAsError(t *testing.T) {
	api := &mockMemberSyncer{SyncUsersFunc: func(ctx context.Context, guildID string, batch []gameapi.SyncMember) (*gameapi.SyncResult, error) {
		return &gameapi.SyncResult{
			Success: true,
			Matched: []gameapi.MatchedUser{{DiscordID: batch[0].ID, ProfileID: 1}},
		}, nil
	}}

	report, err := NewSyncMembersUseCase(api, nil, logger.NewNopLogger()).
		WithTransactor(failingTransactor{}).
		Execute(context.Background(), SyncMembersCommand{GuildID: "G", Members: members(1)})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Errors)
	assert.Zero(t, report.Stored)
}
