package ticket

import (
	"fmt"
	"time"

	vo "github.com/corporatewarfare/cwbot/internal/domain/ticket/valueobjects"
)

// Ticket is a support case bound one-to-one to a private guild channel.
type Ticket struct {
	id          uint
	number      int
	guildID     string
	channelID   string
	creatorID   string
	category    string
	subject     string
	description string
	claimedBy   *string
	status      vo.TicketStatus
	createdAt   time.Time
	updatedAt   time.Time
	closedAt    *time.Time
}

func NewTicket(
	guildID string,
	channelID string,
	creatorID string,
	category string,
	subject string,
	description string,
) (*Ticket, error) {
	if guildID == "" {
		return nil, fmt.Errorf("guild ID is required")
	}
	if channelID == "" {
		return nil, fmt.Errorf("channel ID is required")
	}
	if creatorID == "" {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := time.Now().UTC()
	return &Ticket{
		guildID:     guildID,
		channelID:   channelID,
		creatorID:   creatorID,
		category:    category,
		subject:     subject,
		description: description,
		status:      vo.StatusOpen,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	number int,
	guildID string,
	channelID string,
	creatorID string,
	category string,
	subject string,
	description string,
	claimedBy *string,
	status vo.TicketStatus,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if number <= 0 {
		return nil, fmt.Errorf("ticket number must be positive")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if status.IsClosed() != (closedAt != nil) {
		return nil, fmt.Errorf("closed_at must be set exactly when the ticket is closed")
	}

	return &Ticket{
		id:          id,
		number:      number,
		guildID:     guildID,
		channelID:   channelID,
		creatorID:   creatorID,
		category:    category,
		subject:     subject,
		description: description,
		claimedBy:   claimedBy,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		closedAt:    closedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

// Number is the per-guild ticket number shown to users.
func (t *Ticket) Number() int {
	return t.number
}

func (t *Ticket) GuildID() string {
	return t.guildID
}

func (t *Ticket) ChannelID() string {
	return t.channelID
}

func (t *Ticket) CreatorID() string {
	return t.creatorID
}

func (t *Ticket) Category() string {
	return t.category
}

func (t *Ticket) Subject() string {
	return t.subject
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) ClaimedBy() *string {
	return t.claimedBy
}

func (t *Ticket) IsClaimed() bool {
	return t.claimedBy != nil
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// SetNumber assigns the per-guild number. It may be reassigned until the
// ticket is persisted, so a create retry can pick the next free number.
func (t *Ticket) SetNumber(number int) error {
	if t.id != 0 {
		return fmt.Errorf("ticket number cannot change after persistence")
	}
	if number <= 0 {
		return fmt.Errorf("ticket number must be positive")
	}
	t.number = number
	return nil
}

// Claim records staffID as the claimant. The first claim wins.
func (t *Ticket) Claim(staffID string) error {
	if staffID == "" {
		return fmt.Errorf("staff ID is required")
	}
	if t.claimedBy != nil {
		return ErrAlreadyClaimed
	}
	if t.status.IsClosed() {
		return ErrAlreadyClosed
	}
	if !t.status.CanTransitionTo(vo.StatusClaimed) {
		return fmt.Errorf("cannot claim ticket with status %s", t.status)
	}

	t.claimedBy = &staffID
	t.status = vo.StatusClaimed
	t.updatedAt = time.Now().UTC()
	return nil
}

// Close moves an open or claimed ticket to closed and stamps closedAt.
func (t *Ticket) Close() error {
	if t.status.IsClosed() {
		return ErrAlreadyClosed
	}
	if !t.status.CanTransitionTo(vo.StatusClosed) {
		return fmt.Errorf("cannot close ticket with status %s", t.status)
	}

	now := time.Now().UTC()
	t.status = vo.StatusClosed
	t.closedAt = &now
	t.updatedAt = now
	return nil
}
