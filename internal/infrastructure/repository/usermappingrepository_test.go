package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corporatewarfare/cwbot/internal/domain/usermapping"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/database/sqlitetest"
)

func TestUserMappingRepository_UpsertOverwrites(t *testing.T) {
	repo := NewUserMappingRepository(sqlitetest.Open(t))
	ctx := context.Background()

	first := &usermapping.Mapping{
		DiscordID:  "d1",
		UserID:     10,
		ProfileID:  100,
		Username:   "alice",
		PlayerName: "Alice",
		Raw:        []byte(`{"profile_id":100}`),
	}
	require.NoError(t, repo.Upsert(ctx, first))

	stored, err := repo.GetByDiscordID(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	firstUpdated := stored.UpdatedAt
	assert.JSONEq(t, `{"profile_id":100}`, string(stored.Raw))

	time.Sleep(5 * time.Millisecond)

	second := &usermapping.Mapping{
		DiscordID:  "d1",
		UserID:     11,
		ProfileID:  101,
		Username:   "alice2",
		PlayerName: "Alice II",
	}
	require.NoError(t, repo.Upsert(ctx, second))

	stored, err = repo.GetByDiscordID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, int64(11), stored.UserID)
	assert.Equal(t, int64(101), stored.ProfileID)
	assert.Equal(t, "Alice II", stored.PlayerName)
	assert.True(t, stored.UpdatedAt.After(firstUpdated))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	byProfile, err := repo.GetByProfileID(ctx, 101)
	require.NoError(t, err)
	require.NotNil(t, byProfile)
	assert.Equal(t, "d1", byProfile.DiscordID)

	gone, err := repo.GetByProfileID(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
