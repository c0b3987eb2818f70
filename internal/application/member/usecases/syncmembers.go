package usecases

import (
	"context"

	"github.com/corporatewarfare/cwbot/internal/domain/usermapping"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/gameapi"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

// SyncBatchSize is the number of members sent to the game API per request.
const SyncBatchSize = 1000

// MemberSyncer matches guild members against game accounts.
type MemberSyncer interface {
	SyncUsers(ctx context.Context, guildID string, batch []gameapi.SyncMember) (*gameapi.SyncResult, error)
}

type GuildMember struct {
	ID            string
	Username      string
	Discriminator string
	Avatar        string
	Bot           bool
}

type SyncMembersCommand struct {
	GuildID string
	Members []GuildMember
	// Progress, when set, is called before each batch is sent.
	Progress func(batch, total int)
}

type SyncReport struct {
	Processed int
	Matched   int
	Unmatched int
	Updated   int
	Batches   int
	Errors    int
	Stored    int
}

type SyncMembersExecutor interface {
	Execute(ctx context.Context, cmd SyncMembersCommand) (*SyncReport, error)
}

// Transactor runs fn in one database transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type SyncMembersUseCase struct {
	api         MemberSyncer
	mappingRepo usermapping.Repository
	tx          Transactor
	logger      logger.Interface
}

func NewSyncMembersUseCase(api MemberSyncer, mappingRepo usermapping.Repository, logger logger.Interface) *SyncMembersUseCase {
	return &SyncMembersUseCase{api: api, mappingRepo: mappingRepo, logger: logger}
}

// WithTransactor stores each batch's matches in a single transaction.
func (uc *SyncMembersUseCase) WithTransactor(tx Transactor) *SyncMembersUseCase {
	uc.tx = tx
	return uc
}

// Execute sends every human member in batches and stores each match. A
// failed batch is counted and skipped; the remaining batches still run.
func (uc *SyncMembersUseCase) Execute(ctx context.Context, cmd SyncMembersCommand) (*SyncReport, error) {
	humans := make([]gameapi.SyncMember, 0, len(cmd.Members))
	for _, m := range cmd.Members {
		if m.Bot {
			continue
		}
		humans = append(humans, gameapi.SyncMember{
			ID:            m.ID,
			Username:      m.Username,
			Discriminator: m.Discriminator,
			Avatar:        m.Avatar,
		})
	}

	batches := chunk(humans, SyncBatchSize)
	report := &SyncReport{Processed: len(humans), Batches: len(batches)}

	uc.logger.Infow("syncing guild members", "guild_id", cmd.GuildID, "members", len(humans), "batches", len(batches))

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if cmd.Progress != nil {
			cmd.Progress(i+1, len(batches))
		}

		result, err := uc.api.SyncUsers(ctx, cmd.GuildID, batch)
		if err != nil || result == nil || !result.Success {
			uc.logger.Warnw("member sync batch failed", "guild_id", cmd.GuildID, "batch", i+1, "error", err)
			report.Errors++
			continue
		}

		report.Matched += result.Summary.Matched
		report.Unmatched += result.Summary.Unmatched
		report.Updated += result.Summary.Updated

		stored, err := uc.store(ctx, result.Matched)
		if err != nil {
			uc.logger.Errorw("failed to store batch mappings", "guild_id", cmd.GuildID, "batch", i+1, "error", err)
			report.Errors++
			continue
		}
		report.Stored += stored
	}

	uc.logger.Infow("member sync finished",
		"guild_id", cmd.GuildID,
		"matched", report.Matched,
		"unmatched", report.Unmatched,
		"stored", report.Stored,
		"errors", report.Errors,
	)

	return report, nil
}

func (uc *SyncMembersUseCase) store(ctx context.Context, matched []gameapi.MatchedUser) (int, error) {
	if len(matched) == 0 {
		return 0, nil
	}

	stored := 0
	upsert := func(ctx context.Context) error {
		stored = 0
		for _, u := range matched {
			if err := uc.mappingRepo.Upsert(ctx, toMapping(u)); err != nil {
				uc.logger.Errorw("failed to store user mapping", "discord_id", u.DiscordID, "error", err)
				continue
			}
			stored++
		}
		return nil
	}

	if uc.tx == nil {
		return stored, upsert(ctx)
	}
	err := uc.tx.RunInTransaction(ctx, upsert)
	return stored, err
}

func toMapping(u gameapi.MatchedUser) *usermapping.Mapping {
	return &usermapping.Mapping{
		DiscordID:       u.DiscordID,
		UserID:          u.UserID,
		ProfileID:       u.ProfileID,
		Username:        u.Username,
		PlayerName:      u.PlayerName,
		ProfileSlug:     u.ProfileSlug,
		ProfileImageURL: u.ProfileImageURL,
		DiscordUsername: u.DiscordUsername,
		DiscordAvatar:   u.DiscordAvatar,
		Raw:             u.Raw,
	}
}

func chunk[T any](items []T, size int) [][]T {
	var out [][]T
	for len(items) > size {
		out = append(out, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}
