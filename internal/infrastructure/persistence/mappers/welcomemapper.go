package mappers

import (
	"github.com/corporatewarfare/cwbot/internal/domain/welcome"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/persistence/models"
)

func WelcomeStateToModel(s *welcome.State) *models.WelcomeStateModel {
	return &models.WelcomeStateModel{
		MessageID: s.MessageID(),
		UserID:    s.UserID(),
		GuildID:   s.GuildID(),
		CreatedAt: s.CreatedAt().UTC(),
	}
}

func WelcomeStateToDomain(m *models.WelcomeStateModel) *welcome.State {
	if m == nil {
		return nil
	}
	return welcome.ReconstructState(m.MessageID, m.UserID, m.GuildID, m.CreatedAt)
}
