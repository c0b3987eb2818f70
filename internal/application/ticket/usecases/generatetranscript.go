package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/corporatewarfare/cwbot/internal/application/ticket/transcript"
	"github.com/corporatewarfare/cwbot/internal/domain/ticket"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

type GenerateTranscriptQuery struct {
	ChannelID string
}

type TranscriptResult struct {
	Outcome
	Number   int
	FileName string
	Text     string
	HTML     string
}

type GenerateTranscriptExecutor interface {
	Execute(ctx context.Context, query GenerateTranscriptQuery) (*TranscriptResult, error)
}

// GenerateTranscriptUseCase reads the ticket and its channel history. It
// never writes.
type GenerateTranscriptUseCase struct {
	ticketRepo ticket.Repository
	platform   Platform
	logger     logger.Interface
	now        func() time.Time
}

func NewGenerateTranscriptUseCase(
	ticketRepo ticket.Repository,
	platform Platform,
	logger logger.Interface,
) *GenerateTranscriptUseCase {
	return &GenerateTranscriptUseCase{
		ticketRepo: ticketRepo,
		platform:   platform,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *GenerateTranscriptUseCase) Execute(ctx context.Context, query GenerateTranscriptQuery) (*TranscriptResult, error) {
	t, err := uc.ticketRepo.GetByChannelID(ctx, query.ChannelID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "channel_id", query.ChannelID, "error", err)
		return nil, err
	}
	if t == nil {
		return &TranscriptResult{Outcome: failed(ReasonNotFound)}, nil
	}

	channelName := query.ChannelID
	if ch, err := uc.platform.GetChannel(ctx, query.ChannelID); err != nil {
		uc.logger.Warnw("failed to get ticket channel", "channel_id", query.ChannelID, "error", err)
	} else if ch != nil {
		channelName = ch.Name
	}

	messages, err := uc.platform.FetchMessages(ctx, query.ChannelID, transcript.FetchLimit)
	if err != nil {
		uc.logger.Errorw("failed to fetch ticket messages", "channel_id", query.ChannelID, "error", err)
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	header := transcript.Header{
		Number:      t.Number(),
		ChannelName: channelName,
		GeneratedAt: uc.now(),
		Status:      t.Status().String(),
		CreatorID:   t.CreatorID(),
		Subject:     t.Subject(),
	}
	if t.ClaimedBy() != nil {
		header.ClaimedBy = *t.ClaimedBy()
	}

	html, err := transcript.HTML(header, messages)
	if err != nil {
		return nil, err
	}

	return &TranscriptResult{
		Outcome:  succeeded(),
		Number:   t.Number(),
		FileName: fmt.Sprintf("transcript-%d", t.Number()),
		Text:     transcript.Text(header, messages),
		HTML:     html,
	}, nil
}
