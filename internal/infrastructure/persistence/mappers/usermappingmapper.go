package mappers

import (
	"github.com/corporatewarfare/cwbot/internal/domain/usermapping"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/persistence/models"
)

func UserMappingToModel(m *usermapping.Mapping) *models.UserMappingModel {
	model := &models.UserMappingModel{
		DiscordID:       m.DiscordID,
		UserID:          m.UserID,
		ProfileID:       m.ProfileID,
		Username:        m.Username,
		PlayerName:      m.PlayerName,
		ProfileSlug:     m.ProfileSlug,
		ProfileImageURL: m.ProfileImageURL,
		DiscordUsername: m.DiscordUsername,
		DiscordAvatar:   m.DiscordAvatar,
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
	if len(m.Raw) > 0 {
		model.Raw = m.Raw
	}
	return model
}

func UserMappingToDomain(model *models.UserMappingModel) *usermapping.Mapping {
	if model == nil {
		return nil
	}
	return &usermapping.Mapping{
		DiscordID:       model.DiscordID,
		UserID:          model.UserID,
		ProfileID:       model.ProfileID,
		Username:        model.Username,
		PlayerName:      model.PlayerName,
		ProfileSlug:     model.ProfileSlug,
		ProfileImageURL: model.ProfileImageURL,
		DiscordUsername: model.DiscordUsername,
		DiscordAvatar:   model.DiscordAvatar,
		Raw:             []byte(model.Raw),
		UpdatedAt:       model.UpdatedAt,
	}
}
