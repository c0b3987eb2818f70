package usecases

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/corporatewarfare/cwbot/internal/application/notice"
	"github.com/corporatewarfare/cwbot/internal/application/ticket/dto"
	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
	apperrors "github.com/corporatewarfare/cwbot/internal/shared/errors"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

const maxCreateAttempts = 3

type CreateTicketCommand struct {
	GuildID           string `validate:"required"`
	RequesterID       string `validate:"required"`
	RequesterUsername string
	Category          string `validate:"required,max=64"`
	Subject           string `validate:"max=100"`
	Description       string `validate:"max=1000"`
	// ParentID and StaffRoleID override the configured defaults when set.
	ParentID    string
	StaffRoleID string
}

type CreateTicketResult struct {
	Ticket  *dto.TicketDTO
	Channel *Channel
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type CreateTicketUseCase struct {
	ticketRepo    ticket.Repository
	numbers       *ticket.GuildNumberGenerator
	platform      Platform
	notifier      notice.Notifier
	validate      *validator.Validate
	channelPrefix string
	parentID      string
	staffRoleID   string
	logger        logger.Interface
}

type CreateTicketDefaults struct {
	ChannelPrefix string
	ParentID      string
	StaffRoleID   string
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	numbers *ticket.GuildNumberGenerator,
	platform Platform,
	notifier notice.Notifier,
	defaults CreateTicketDefaults,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:    ticketRepo,
		numbers:       numbers,
		platform:      platform,
		notifier:      notifier,
		validate:      validator.New(),
		channelPrefix: defaults.ChannelPrefix,
		parentID:      defaults.ParentID,
		staffRoleID:   defaults.StaffRoleID,
		logger:        logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case",
		"guild_id", cmd.GuildID, "requester_id", cmd.RequesterID, "category", cmd.Category)

	if err := uc.validate.Struct(cmd); err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, apperrors.NewValidationError(validationMessage(err))
	}

	parentID := firstNonEmpty(cmd.ParentID, uc.parentID)
	staffRoleID := firstNonEmpty(cmd.StaffRoleID, uc.staffRoleID)

	unlock := uc.numbers.Lock(cmd.GuildID)
	defer unlock()

	number, err := uc.numbers.Next(ctx, cmd.GuildID)
	if err != nil {
		return nil, err
	}

	channel, err := uc.platform.CreateTicketChannel(ctx, ChannelSpec{
		GuildID:     cmd.GuildID,
		Name:        ChannelName(uc.channelPrefix, number, cmd.RequesterUsername),
		Topic:       cmd.Subject,
		ParentID:    parentID,
		RequesterID: cmd.RequesterID,
		StaffRoleID: staffRoleID,
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket channel", "guild_id", cmd.GuildID, "error", err)
		return nil, fmt.Errorf("failed to create ticket channel: %w", err)
	}

	t, err := uc.persist(ctx, cmd, channel, number)
	if err != nil {
		if delErr := uc.platform.DeleteChannel(ctx, channel.ID); delErr != nil {
			uc.logger.Warnw("failed to remove orphaned ticket channel", "channel_id", channel.ID, "error", delErr)
		}
		return nil, err
	}

	uc.postIntro(ctx, t, cmd, staffRoleID)

	uc.logger.Infow("ticket created successfully",
		"guild_id", t.GuildID(), "number", t.Number(), "channel_id", t.ChannelID())

	return &CreateTicketResult{
		Ticket:  dto.ToTicketDTO(t),
		Channel: channel,
	}, nil
}

// persist inserts the ticket, moving to the next number when another writer
// took the one we read.
func (uc *CreateTicketUseCase) persist(ctx context.Context, cmd CreateTicketCommand, channel *Channel, number int) (*ticket.Ticket, error) {
	t, err := ticket.NewTicket(cmd.GuildID, channel.ID, cmd.RequesterID, cmd.Category, cmd.Subject, cmd.Description)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	for attempt := 1; ; attempt++ {
		if err := t.SetNumber(number); err != nil {
			return nil, err
		}

		err := uc.ticketRepo.Create(ctx, t)
		if err == nil {
			break
		}
		if !errors.Is(err, ticket.ErrNumberTaken) || attempt == maxCreateAttempts {
			uc.logger.Errorw("failed to persist ticket", "guild_id", cmd.GuildID, "number", number, "error", err)
			return nil, err
		}

		uc.logger.Warnw("ticket number taken, retrying", "guild_id", cmd.GuildID, "number", number)
		if number, err = uc.numbers.Next(ctx, cmd.GuildID); err != nil {
			return nil, err
		}
		name := ChannelName(uc.channelPrefix, number, cmd.RequesterUsername)
		if err := uc.platform.RenameChannel(ctx, channel.ID, name); err != nil {
			uc.logger.Warnw("failed to rename ticket channel", "channel_id", channel.ID, "error", err)
		} else {
			channel.Name = name
		}
	}

	return t, nil
}

func (uc *CreateTicketUseCase) postIntro(ctx context.Context, t *ticket.Ticket, cmd CreateTicketCommand, staffRoleID string) {
	messageID, err := uc.notifier.Notify(ctx, t.ChannelID(), notice.Notice{
		Kind:         notice.KindTicketOpened,
		GuildID:      t.GuildID(),
		UserID:       t.CreatorID(),
		Username:     cmd.RequesterUsername,
		TicketNumber: t.Number(),
		Category:     t.Category(),
		Subject:      t.Subject(),
		Description:  t.Description(),
		StaffRoleID:  staffRoleID,
	})
	if err != nil {
		uc.logger.Warnw("failed to post ticket intro", "channel_id", t.ChannelID(), "error", err)
		return
	}

	if err := uc.platform.PinMessage(ctx, t.ChannelID(), messageID); err != nil {
		uc.logger.Warnw("failed to pin ticket intro", "channel_id", t.ChannelID(), "error", err)
	}
}

var channelNameInvalid = regexp.MustCompile(`[^a-z0-9-]`)

// ChannelName builds "<prefix><number>-<username>" restricted to lowercase
// letters, digits and dashes.
func ChannelName(prefix string, number int, username string) string {
	name := strings.ToLower(fmt.Sprintf("%s%d-%s", prefix, number, username))
	return channelNameInvalid.ReplaceAllString(name, "")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid.", fe.Field())
}
