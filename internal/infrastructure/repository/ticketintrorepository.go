package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/corporatewarfare/cwbot/internal/domain/ticketintro"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/persistence/models"
	"github.com/corporatewarfare/cwbot/internal/shared/db"
)

type TicketIntroRepository struct {
	db *gorm.DB
}

func NewTicketIntroRepository(db *gorm.DB) *TicketIntroRepository {
	return &TicketIntroRepository{db: db}
}

func (r *TicketIntroRepository) Add(ctx context.Context, m *ticketintro.IntroMessage) (bool, error) {
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	model := &models.TicketIntroMessageModel{
		MessageID: m.MessageID,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		CreatedAt: createdAt.UTC(),
	}

	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to add ticket intro message: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *TicketIntroRepository) Exists(ctx context.Context, messageID string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketIntroMessageModel{}).
		Where("message_id = ?", messageID).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up ticket intro message: %w", err)
	}
	return count > 0, nil
}

func (r *TicketIntroRepository) Remove(ctx context.Context, messageID string) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("message_id = ?", messageID).
		Delete(&models.TicketIntroMessageModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove ticket intro message: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *TicketIntroRepository) ListMessageIDs(ctx context.Context, guildID string) ([]string, error) {
	var ids []string
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TicketIntroMessageModel{})
	if guildID != "" {
		query = query.Where("guild_id = ?", guildID)
	}
	if err := query.Order("created_at").Pluck("message_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket intro messages: %w", err)
	}
	return ids, nil
}

func (r *TicketIntroRepository) RemoveByGuild(ctx context.Context, guildID string) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("guild_id = ?", guildID).
		Delete(&models.TicketIntroMessageModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to remove ticket intro messages: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *TicketIntroRepository) Count(ctx context.Context, guildID string) (int64, error) {
	var count int64
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TicketIntroMessageModel{})
	if guildID != "" {
		query = query.Where("guild_id = ?", guildID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count ticket intro messages: %w", err)
	}
	return count, nil
}
