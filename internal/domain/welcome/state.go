package welcome

import (
	"context"
	"fmt"
	"time"
)

// RetentionPeriod is how long an unanswered verification prompt is kept.
const RetentionPeriod = 24 * time.Hour

// State is a pending verification: the prompt message posted for one member.
// Deleting the record is the verified terminal state.
type State struct {
	messageID string
	userID    string
	guildID   string
	createdAt time.Time
}

func NewState(messageID, userID, guildID string) (*State, error) {
	if messageID == "" {
		return nil, fmt.Errorf("message ID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if guildID == "" {
		return nil, fmt.Errorf("guild ID is required")
	}
	return &State{
		messageID: messageID,
		userID:    userID,
		guildID:   guildID,
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructState(messageID, userID, guildID string, createdAt time.Time) *State {
	return &State{
		messageID: messageID,
		userID:    userID,
		guildID:   guildID,
		createdAt: createdAt,
	}
}

func (s *State) MessageID() string    { return s.messageID }
func (s *State) UserID() string       { return s.userID }
func (s *State) GuildID() string      { return s.guildID }
func (s *State) CreatedAt() time.Time { return s.createdAt }

// CanBeVerifiedBy reports whether userID is the member the prompt was
// posted for.
func (s *State) CanBeVerifiedBy(userID string) bool {
	return userID != "" && s.userID == userID
}

// Repository persists welcome states. Lookups return (nil, nil) when nothing
// matches.
type Repository interface {
	Create(ctx context.Context, s *State) error
	GetByMessageID(ctx context.Context, messageID string) (*State, error)
	// GetLatestByUser returns the most recently created state for the member.
	GetLatestByUser(ctx context.Context, userID, guildID string) (*State, error)
	ListByGuild(ctx context.Context, guildID string) ([]*State, error)
	DeleteByMessageID(ctx context.Context, messageID string) (bool, error)
	DeleteByUser(ctx context.Context, userID, guildID string) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Count(ctx context.Context, guildID string) (int64, error)
}
