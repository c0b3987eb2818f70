package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/corporatewarfare/cwbot/internal/domain/welcome"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/persistence/mappers"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/persistence/models"
	"github.com/corporatewarfare/cwbot/internal/shared/db"
)

type WelcomeStateRepository struct {
	db *gorm.DB
}

func NewWelcomeStateRepository(db *gorm.DB) *WelcomeStateRepository {
	return &WelcomeStateRepository{db: db}
}

func (r *WelcomeStateRepository) Create(ctx context.Context, s *welcome.State) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.WelcomeStateToModel(s)).Error; err != nil {
		return fmt.Errorf("failed to create welcome state: %w", err)
	}
	return nil
}

func (r *WelcomeStateRepository) GetByMessageID(ctx context.Context, messageID string) (*welcome.State, error) {
	var model models.WelcomeStateModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("message_id = ?", messageID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find welcome state: %w", err)
	}
	return mappers.WelcomeStateToDomain(&model), nil
}

func (r *WelcomeStateRepository) GetLatestByUser(ctx context.Context, userID, guildID string) (*welcome.State, error) {
	var model models.WelcomeStateModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find welcome state: %w", err)
	}
	return mappers.WelcomeStateToDomain(&model), nil
}

func (r *WelcomeStateRepository) ListByGuild(ctx context.Context, guildID string) ([]*welcome.State, error) {
	var ms []*models.WelcomeStateModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("guild_id = ?", guildID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list welcome states: %w", err)
	}

	out := make([]*welcome.State, 0, len(ms))
	for _, m := range ms {
		out = append(out, mappers.WelcomeStateToDomain(m))
	}
	return out, nil
}

func (r *WelcomeStateRepository) DeleteByMessageID(ctx context.Context, messageID string) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("message_id = ?", messageID).
		Delete(&models.WelcomeStateModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete welcome state: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *WelcomeStateRepository) DeleteByUser(ctx context.Context, userID, guildID string) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		Delete(&models.WelcomeStateModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete welcome states: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *WelcomeStateRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("created_at < ?", cutoff.UTC()).
		Delete(&models.WelcomeStateModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete stale welcome states: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *WelcomeStateRepository) Count(ctx context.Context, guildID string) (int64, error) {
	var count int64
	query := db.GetTxFromContext(ctx, r.db).Model(&models.WelcomeStateModel{})
	if guildID != "" {
		query = query.Where("guild_id = ?", guildID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count welcome states: %w", err)
	}
	return count, nil
}
