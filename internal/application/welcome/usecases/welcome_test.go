package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
	"github.com/corporatewarfare/cwbot/internal/domain/welcome"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/database/sqlitetest"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/repository"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

func testSettings() Settings {
	return Settings{
		ChannelID:        "welcome",
		RulesChannelID:   "rules",
		UnverifiedRoleID: "unverified",
		MemberRoleID:     "member",
		VerifyEmoji:      "✅",
	}
}

func joinCommand() MemberJoinCommand {
	return MemberJoinCommand{GuildID: "G", GuildName: "Corporate Warfare", UserID: "M", Username: "mallory", MemberCount: 42}
}

func TestWelcomeVerificationScenario(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWelcomeStateRepository(sqlitetest.Open(t))
	platform := newFakeMemberPlatform("welcome")
	notifier := &fakeNotifier{}
	log := logger.NewNopLogger()

	join := NewHandleMemberJoinUseCase(repo, platform, notifier, testSettings(), log)
	verify := NewHandleVerificationUseCase(repo, platform, notifier, testSettings(), log)

	joined, err := join.Execute(ctx, joinCommand())
	require.NoError(t, err)
	require.True(t, joined.Posted)
	assert.Equal(t, []roleCall{{Op: "add", GuildID: "G", UserID: "M", RoleID: "unverified"}}, platform.roleCalls)
	assert.Equal(t, []string{joined.MessageID + ":✅"}, platform.reactions)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, notice.KindWelcome, notifier.sent[0].Kind)
	assert.Equal(t, 42, notifier.sent[0].MemberCount)
	assert.Equal(t, "rules", notifier.sent[0].RulesChannelID)

	state, err := repo.GetByMessageID(ctx, joined.MessageID)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "M", state.UserID())

	res, err := verify.Execute(ctx, VerifyCommand{GuildID: "G", ChannelID: "welcome", MessageID: joined.MessageID, UserID: "M"})
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Equal(t, []roleCall{
		{Op: "add", GuildID: "G", UserID: "M", RoleID: "unverified"},
		{Op: "remove", GuildID: "G", UserID: "M", RoleID: "unverified"},
		{Op: "add", GuildID: "G", UserID: "M", RoleID: "member"},
	}, platform.roleCalls)
	assert.Equal(t, notice.KindVerified, notifier.sent[1].Kind)

	gone, err := repo.GetByMessageID(ctx, joined.MessageID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	again, err := verify.Execute(ctx, VerifyCommand{GuildID: "G", ChannelID: "welcome", MessageID: joined.MessageID, UserID: "M"})
	require.NoError(t, err)
	assert.False(t, again.Verified)
	assert.Equal(t, RejectNoPendingState, again.Reason)
}

func TestHandleVerification_MismatchedUserKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWelcomeStateRepository(sqlitetest.Open(t))
	state, err := welcome.NewState("prompt-1", "M", "G")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, state))

	platform := newFakeMemberPlatform()
	notifier := &fakeNotifier{}
	verify := NewHandleVerificationUseCase(repo, platform, notifier, testSettings(), logger.NewNopLogger())

	res, err := verify.Execute(ctx, VerifyCommand{GuildID: "G", ChannelID: "welcome", MessageID: "prompt-1", UserID: "intruder"})
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, RejectUserMismatch, res.Reason)
	assert.Empty(t, platform.roleCalls)
	assert.Empty(t, notifier.sent)

	kept, err := repo.GetByMessageID(ctx, "prompt-1")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestHandleVerification_RoleFailuresStillVerify(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWelcomeStateRepository(sqlitetest.Open(t))
	state, err := welcome.NewState("prompt-1", "M", "G")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, state))

	platform := newFakeMemberPlatform()
	platform.failOn["add"] = errors.New("missing permissions")
	platform.failOn["remove"] = errors.New("missing permissions")
	notifier := &fakeNotifier{err: errors.New("cannot send")}

	res, err := NewHandleVerificationUseCase(repo, platform, notifier, testSettings(), logger.NewNopLogger()).
		Execute(ctx, VerifyCommand{GuildID: "G", ChannelID: "welcome", MessageID: "prompt-1", UserID: "M"})

	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Len(t, platform.roleCalls, 2)

	gone, err := repo.GetByMessageID(ctx, "prompt-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestHandleVerification_UnconfiguredRolesAreSkipped(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWelcomeStateRepository(sqlitetest.Open(t))
	state, err := welcome.NewState("prompt-1", "M", "G")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, state))

	platform := newFakeMemberPlatform()
	settings := testSettings()
	settings.UnverifiedRoleID = ""
	settings.MemberRoleID = ""

	res, err := NewHandleVerificationUseCase(repo, platform, &fakeNotifier{}, settings, logger.NewNopLogger()).
		Execute(ctx, VerifyCommand{GuildID: "G", ChannelID: "welcome", MessageID: "prompt-1", UserID: "M"})

	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Empty(t, platform.roleCalls)
}

func TestHandleMemberJoin_WelcomeChannelMissing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWelcomeStateRepository(sqlitetest.Open(t))
	platform := newFakeMemberPlatform()
	notifier := &fakeNotifier{}

	res, err := NewHandleMemberJoinUseCase(repo, platform, notifier, testSettings(), logger.NewNopLogger()).
		Execute(ctx, joinCommand())

	require.NoError(t, err)
	assert.False(t, res.Posted)
	assert.Len(t, platform.roleCalls, 1, "unverified role is still assigned")
	assert.Empty(t, notifier.sent)

	count, err := repo.Count(ctx, "G")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestHandleMemberJoin_RoleFailureTolerated(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWelcomeStateRepository(sqlitetest.Open(t))
	platform := newFakeMemberPlatform("welcome")
	platform.failOn["add"] = errors.New("unknown role")
	platform.failOn["react"] = errors.New("unknown emoji")

	res, err := NewHandleMemberJoinUseCase(repo, platform, &fakeNotifier{}, testSettings(), logger.NewNopLogger()).
		Execute(ctx, joinCommand())

	require.NoError(t, err)
	assert.True(t, res.Posted)

	latest, err := repo.GetLatestByUser(ctx, "M", "G")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, res.MessageID, latest.MessageID())
}

func TestHandleMemberJoin_PostFailureKeepsNoState(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWelcomeStateRepository(sqlitetest.Open(t))

	res, err := NewHandleMemberJoinUseCase(repo, newFakeMemberPlatform("welcome"), &fakeNotifier{err: errors.New("no access")},
		testSettings(), logger.NewNopLogger()).Execute(ctx, joinCommand())

	require.NoError(t, err)
	assert.False(t, res.Posted)
	count, err := repo.Count(ctx, "G")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestHandleMemberJoin_Preview(t *testing.T) {
	notifier := &fakeNotifier{}
	platform := newFakeMemberPlatform("welcome")
	uc := NewHandleMemberJoinUseCase(nil, platform, notifier, testSettings(), logger.NewNopLogger())

	require.NoError(t, uc.Preview(context.Background(), "admin-chan", joinCommand()))

	assert.Equal(t, []string{"admin-chan"}, notifier.chans)
	assert.Empty(t, platform.roleCalls)
}

func TestCleanupStaleStatesUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	repo := repository.NewWelcomeStateRepository(db)
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, welcome.ReconstructState("old", "u1", "G", now.Add(-25*time.Hour))))
	require.NoError(t, repo.Create(ctx, welcome.ReconstructState("fresh", "u2", "G", now.Add(-time.Hour))))

	uc := NewCleanupStaleStatesUseCase(repo, 0, logger.NewNopLogger())
	uc.now = func() time.Time { return now }

	removed, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	old, err := repo.GetByMessageID(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, old)
	fresh, err := repo.GetByMessageID(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}

func TestGetWelcomeStatusUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWelcomeStateRepository(sqlitetest.Open(t))
	state, err := welcome.NewState("prompt-1", "M", "G")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, state))

	status, err := NewGetWelcomeStatusUseCase(repo, newFakeMemberPlatform("welcome"), testSettings(), logger.NewNopLogger()).
		Execute(ctx, "G")

	require.NoError(t, err)
	assert.True(t, status.WelcomeChannelFound)
	assert.Equal(t, int64(1), status.PendingCount)
	assert.Equal(t, "member", status.MemberRoleID)
}
