package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
	vo "github.com/corporatewarfare/cwbot/internal/domain/ticket/valueobjects"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/persistence/mappers"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/persistence/models"
	"github.com/corporatewarfare/cwbot/internal/shared/db"
	apperrors "github.com/corporatewarfare/cwbot/internal/shared/errors"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) && r.numberTaken(ctx, t.GuildID(), t.Number()) {
			return ticket.ErrNumberTaken
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return t.SetID(model.ID)
}

// numberTaken tells a (guild, number) collision apart from a channel one.
func (r *TicketRepository) numberTaken(ctx context.Context, guildID string, number int) bool {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("guild_id = ? AND number = ?", guildID, number).
		Count(&count).Error
	return err == nil && count > 0
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *TicketRepository) GetByChannelID(ctx context.Context, channelID string) (*ticket.Ticket, error) {
	return r.first(ctx, "channel_id = ?", channelID)
}

func (r *TicketRepository) first(ctx context.Context, query string, args ...any) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) ListByGuild(ctx context.Context, guildID string, filter ticket.ListFilter) ([]*ticket.Ticket, error) {
	var ms []*models.TicketModel
	query := db.GetTxFromContext(ctx, r.db).
		Where("guild_id = ?", guildID)

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", filter.Since.UTC())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Order("number DESC").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return r.mapper.ToDomainList(ms)
}

func (r *TicketRepository) ListByCreator(ctx context.Context, guildID, creatorID string) ([]*ticket.Ticket, error) {
	var ms []*models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("guild_id = ? AND creator_id = ?", guildID, creatorID).
		Order("number DESC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets by creator: %w", err)
	}

	return r.mapper.ToDomainList(ms)
}

func (r *TicketRepository) MaxNumber(ctx context.Context, guildID string) (int, error) {
	var maxNumber int
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("guild_id = ?", guildID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&maxNumber).Error; err != nil {
		return 0, fmt.Errorf("failed to read max ticket number: %w", err)
	}
	return maxNumber, nil
}

func (r *TicketRepository) SaveClaim(ctx context.Context, t *ticket.Ticket) (bool, error) {
	if t.ClaimedBy() == nil {
		return false, fmt.Errorf("ticket %d has no claimant", t.Number())
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("channel_id = ? AND claimed_by IS NULL AND status = ?", t.ChannelID(), vo.StatusOpen.String()).
		Updates(map[string]any{
			"claimed_by": *t.ClaimedBy(),
			"status":     t.Status().String(),
			"updated_at": t.UpdatedAt().UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim ticket: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *TicketRepository) SaveClose(ctx context.Context, t *ticket.Ticket) (bool, error) {
	if t.ClosedAt() == nil {
		return false, fmt.Errorf("ticket %d is not closed", t.Number())
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("channel_id = ? AND status <> ?", t.ChannelID(), vo.StatusClosed.String()).
		Updates(map[string]any{
			"status":     vo.StatusClosed.String(),
			"closed_at":  t.ClosedAt().UTC(),
			"updated_at": t.UpdatedAt().UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to close ticket: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *TicketRepository) DeleteByChannelID(ctx context.Context, channelID string) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("channel_id = ?", channelID).
		Delete(&models.TicketModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *TicketRepository) Count(ctx context.Context, guildID string, status *vo.TicketStatus) (int64, error) {
	var count int64
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("guild_id = ?", guildID)
	if status != nil {
		query = query.Where("status = ?", status.String())
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, guildID string) (map[vo.TicketStatus]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Select("status, COUNT(*) AS total").
		Where("guild_id = ?", guildID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by status: %w", err)
	}

	counts := map[vo.TicketStatus]int64{
		vo.StatusOpen:    0,
		vo.StatusClaimed: 0,
		vo.StatusClosed:  0,
	}
	for _, row := range rows {
		counts[vo.TicketStatus(row.Status)] = row.Total
	}
	return counts, nil
}
