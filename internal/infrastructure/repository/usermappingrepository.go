package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/corporatewarfare/cwbot/internal/domain/usermapping"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/persistence/mappers"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/persistence/models"
	"github.com/corporatewarfare/cwbot/internal/shared/db"
)

// upsertColumns are overwritten when the discord_id already exists.
// created_at is deliberately absent.
var upsertColumns = []string{
	"user_id", "profile_id", "username", "player_name", "profile_slug",
	"profile_image_url", "discord_username", "discord_avatar", "raw", "updated_at",
}

type UserMappingRepository struct {
	db *gorm.DB
}

func NewUserMappingRepository(db *gorm.DB) *UserMappingRepository {
	return &UserMappingRepository{db: db}
}

func (r *UserMappingRepository) Upsert(ctx context.Context, m *usermapping.Mapping) error {
	now := time.Now().UTC()
	m.UpdatedAt = now

	model := mappers.UserMappingToModel(m)
	model.CreatedAt = now

	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "discord_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert user mapping %s: %w", m.DiscordID, err)
	}
	return nil
}

func (r *UserMappingRepository) GetByDiscordID(ctx context.Context, discordID string) (*usermapping.Mapping, error) {
	return r.first(ctx, "discord_id = ?", discordID)
}

func (r *UserMappingRepository) GetByProfileID(ctx context.Context, profileID int64) (*usermapping.Mapping, error) {
	return r.first(ctx, "profile_id = ?", profileID)
}

func (r *UserMappingRepository) first(ctx context.Context, query string, args ...any) (*usermapping.Mapping, error) {
	var model models.UserMappingModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user mapping: %w", err)
	}
	return mappers.UserMappingToDomain(&model), nil
}

func (r *UserMappingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.UserMappingModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count user mappings: %w", err)
	}
	return count, nil
}
