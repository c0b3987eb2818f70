package views

// Component custom ids. Ids with an argument use "action:arg".
const (
	IDTicketClose          = "ticket_close"
	IDTicketClaim          = "ticket_claim"
	IDTicketTranscript     = "ticket_transcript"
	IDTicketDelete         = "ticket_delete"
	IDTicketConfirmClose   = "ticket_confirm_close"
	IDTicketCancelClose    = "ticket_cancel_close"
	IDTicketCloseReason    = "ticket_close_reason"
	IDTicketCreateModal    = "ticket_create_modal"
	IDTicketCloseModal     = "ticket_close_reason_modal"
	IDTicketCategorySelect = "ticket_category_select"

	IDHelpBack           = "help_back"
	IDHelpCategorySelect = "help_category_select"
	IDHelpCommandSelect  = "help_command_select"

	// IDLeaderboardPage carries "sort:page".
	IDLeaderboardPage = "lb_page"
)

// Modal text input ids.
const (
	FieldTicketSubject     = "ticket_subject"
	FieldTicketDescription = "ticket_description"
	FieldCloseReason       = "close_reason"
)

const (
	helpCategoryPrefix = "help_cat_"
	helpCommandPrefix  = "help_cmd_"
)
