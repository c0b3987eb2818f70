package discordbot

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketUsecases "github.com/corporatewarfare/cwbot/internal/application/ticket/usecases"
	"github.com/corporatewarfare/cwbot/internal/infrastructure/discord/views"
	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction/testutil"
	apperrors "github.com/corporatewarfare/cwbot/internal/shared/errors"
)

func TestTicketCommand_RepliesWithSelector(t *testing.T) {
	h := newHarness()
	rec := testutil.NewRecorder()

	h.route(t, command(rec, "ticket", nil))

	last := rec.Last()
	assert.Equal(t, "Reply", last.Method)
	assert.True(t, last.Response.Ephemeral)
	require.Len(t, last.Response.Embeds, 1)
	assert.Len(t, last.Response.Embeds[0].Fields, 2)
	require.Len(t, last.Response.Components, 1)
}

func TestCategorySelect_OpensModalForCategory(t *testing.T) {
	h := newHarness()
	rec := testutil.NewRecorder()

	h.route(t, &interaction.SelectMenuEvent{Base: base(rec), CustomID: views.IDTicketCategorySelect, Values: []string{"bug"}})

	last := rec.Last()
	assert.Equal(t, "ShowModal", last.Method)
	assert.Equal(t, views.IDTicketCreateModal+":bug", last.Modal.CustomID)
	assert.Contains(t, last.Modal.Title, "Bug Report")
}

func TestCategorySelect_UnknownCategory(t *testing.T) {
	h := newHarness()
	rec := testutil.NewRecorder()

	h.route(t, &interaction.SelectMenuEvent{Base: base(rec), CustomID: views.IDTicketCategorySelect, Values: []string{"nope"}})

	assert.Equal(t, msgUnknownCategory, rec.Last().Response.Content)
}

func createModal(rec *testutil.Recorder, category string) *interaction.ModalEvent {
	return &interaction.ModalEvent{
		Base:     base(rec),
		CustomID: views.IDTicketCreateModal + ":" + category,
		Fields: map[string]string{
			views.FieldTicketSubject:     "  Cannot log in ",
			views.FieldTicketDescription: "Since the update",
		},
	}
}

func TestCreateTicketModal_CreatesTicket(t *testing.T) {
	h := newHarness()
	rec := testutil.NewRecorder()

	h.route(t, createModal(rec, "bug"))

	require.Len(t, h.create.calls, 1)
	cmd := h.create.calls[0]
	assert.Equal(t, "g1", cmd.GuildID)
	assert.Equal(t, "alice", cmd.RequesterID)
	assert.Equal(t, "bug", cmd.Category)
	assert.Equal(t, "Cannot log in", cmd.Subject)
	assert.Equal(t, "parent", cmd.ParentID)
	assert.Equal(t, "staff", cmd.StaffRoleID)

	assert.Equal(t, []string{"Defer", "Edit"}, rec.Methods())
	assert.Equal(t, views.TicketCreatedMessage("new-chan"), rec.Last().Response.Content)
}

func TestCreateTicketModal_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", apperrors.NewValidationError("Subject is required"), "❌ Subject is required"},
		{"platform", errors.New("missing access"), msgCreateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.create.ExecuteFunc = func(context.Context, ticketUsecases.CreateTicketCommand) (*ticketUsecases.CreateTicketResult, error) {
				return nil, tt.err
			}
			rec := testutil.NewRecorder()

			h.route(t, createModal(rec, "support"))

			assert.Equal(t, tt.want, rec.Last().Response.Content)
		})
	}
}

func TestClaimButton(t *testing.T) {
	h := newHarness()
	rec := testutil.NewRecorder()
	h.claim.result = &ticketUsecases.TicketResult{Outcome: ticketUsecases.Outcome{Success: true}}

	h.route(t, button(rec, views.IDTicketClaim))

	assert.Equal(t, msgClaimed, rec.Last().Response.Content)
	assert.Equal(t, ticketUsecases.ClaimTicketCommand{ChannelID: "chan", StaffID: "alice"}, h.claim.calls[0])

	rec = testutil.NewRecorder()
	h.claim.result = &ticketUsecases.TicketResult{Outcome: ticketUsecases.Outcome{Reason: ticketUsecases.ReasonAlreadyClaimed}}
	h.route(t, button(rec, views.IDTicketClaim))
	assert.Equal(t, "❌ This ticket has already been claimed.", rec.Last().Response.Content)
	assert.True(t, rec.Last().Response.Ephemeral)
}

func TestCloseFlow(t *testing.T) {
	h := newHarness()

	rec := testutil.NewRecorder()
	h.route(t, button(rec, views.IDTicketClose))
	assert.Equal(t, "Are you sure you want to close this ticket?", rec.Last().Response.Content)
	assert.Empty(t, h.close.calls)

	rec = testutil.NewRecorder()
	h.close.result = &ticketUsecases.CloseTicketResult{TicketResult: ticketUsecases.TicketResult{Outcome: ticketUsecases.Outcome{Success: true}}}
	h.route(t, button(rec, views.IDTicketConfirmClose))
	assert.Equal(t, "Update", rec.Last().Method)
	assert.Equal(t, msgClosed, rec.Last().Response.Content)
	assert.Equal(t, "", h.close.calls[0].Reason)

	rec = testutil.NewRecorder()
	h.close.result = &ticketUsecases.CloseTicketResult{TicketResult: ticketUsecases.TicketResult{Outcome: ticketUsecases.Outcome{Reason: ticketUsecases.ReasonAlreadyClosed}}}
	h.route(t, button(rec, views.IDTicketConfirmClose))
	assert.Equal(t, "❌ This ticket is already closed.", rec.Last().Response.Content)

	rec = testutil.NewRecorder()
	h.route(t, button(rec, views.IDTicketCancelClose))
	assert.Equal(t, msgCloseCancelled, rec.Last().Response.Content)
	assert.Len(t, h.close.calls, 2)
}

func TestCloseWithReason(t *testing.T) {
	h := newHarness()
	h.close.result = &ticketUsecases.CloseTicketResult{TicketResult: ticketUsecases.TicketResult{Outcome: ticketUsecases.Outcome{Success: true}}}

	rec := testutil.NewRecorder()
	h.route(t, button(rec, views.IDTicketCloseReason))
	assert.Equal(t, views.IDTicketCloseModal, rec.Last().Modal.CustomID)

	rec = testutil.NewRecorder()
	h.route(t, &interaction.ModalEvent{
		Base:     base(rec),
		CustomID: views.IDTicketCloseModal,
		Fields:   map[string]string{views.FieldCloseReason: " resolved "},
	})
	assert.Equal(t, "resolved", h.close.calls[0].Reason)
	assert.Equal(t, []string{"Defer", "Edit"}, rec.Methods())
}

func TestTranscriptButton_AttachesTextAndHTML(t *testing.T) {
	h := newHarness()
	h.transcript.result = &ticketUsecases.TranscriptResult{
		Outcome:  ticketUsecases.Outcome{Success: true},
		Number:   7,
		FileName: "transcript-7",
		Text:     "plain",
		HTML:     "<p>html</p>",
	}
	rec := testutil.NewRecorder()

	h.route(t, button(rec, views.IDTicketTranscript))

	last := rec.Last()
	assert.Equal(t, msgTranscriptReady, last.Response.Content)
	require.Len(t, last.Response.Files, 2)
	assert.Equal(t, "transcript-7.txt", last.Response.Files[0].Name)
	assert.Equal(t, "transcript-7.html", last.Response.Files[1].Name)
	body, err := io.ReadAll(last.Response.Files[0].Reader)
	require.NoError(t, err)
	assert.Equal(t, "plain", string(body))
}

func TestTranscriptButton_NotATicket(t *testing.T) {
	h := newHarness()
	h.transcript.result = &ticketUsecases.TranscriptResult{Outcome: ticketUsecases.Outcome{Reason: ticketUsecases.ReasonNotFound}}
	rec := testutil.NewRecorder()

	h.route(t, button(rec, views.IDTicketTranscript))

	assert.Equal(t, "❌ This channel is not a ticket.", rec.Last().Response.Content)
	assert.Empty(t, rec.Last().Response.Files)
}

func TestDeleteButton_DeletesAfterDelay(t *testing.T) {
	h := newHarness()
	rec := testutil.NewRecorder()

	h.route(t, button(rec, views.IDTicketDelete))

	assert.Equal(t, "🗑️ Deleting ticket in 5 seconds...", rec.Calls[0].Response.Content)
	assert.False(t, rec.Calls[0].Response.Ephemeral)
	assert.Equal(t, []time.Duration{5 * time.Second}, h.delays)
	require.Len(t, h.delete.calls, 1)
	assert.Equal(t, "chan", h.delete.calls[0].ChannelID)
}

func TestTicketPanelCommand(t *testing.T) {
	h := newHarness()
	rec := testutil.NewRecorder()

	h.route(t, command(rec, "ticket-panel", nil))

	assert.Equal(t, []ticketUsecases.PostTicketPanelCommand{{GuildID: "g1", ChannelID: "chan"}}, h.panel.posted)
	assert.Equal(t, []string{"Defer", "Edit"}, rec.Methods())
	assert.Equal(t, msgPanelCreated, rec.Last().Response.Content)
}

func TestClaimButton_RepositoryErrorIsReported(t *testing.T) {
	h := newHarness()
	h.claim.err = errors.New("database is locked")
	rec := testutil.NewRecorder()

	err := h.router.Route(context.Background(), button(rec, views.IDTicketClaim))

	assert.Error(t, err)
	assert.Equal(t, "Reply", rec.Last().Method)
	assert.Contains(t, rec.Last().Response.Content, "❌")
}
