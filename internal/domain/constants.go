package domain

const (
	RoleAdmin       = "ADMIN"
	RoleOrganizer   = "ORGANIZER"
	RoleParticipant = "PARTICIPANT"
)

// Transaction statuses. A transaction is one ledger leg: a charge moves
// pending -> authorized -> captured and may later be refunded or disputed;
// a payout leg moves pending -> captured when the payout is processed.
const (
	TxnStatusPending    = "pending"
	TxnStatusAuthorized = "authorized"
	TxnStatusCaptured   = "captured"
	TxnStatusFailed     = "failed"
	TxnStatusRefunded   = "refunded"
	TxnStatusDisputed   = "disputed"
)

const (
	TxnTypeHackathonRegistration = "hackathon_registration"
	TxnTypeTeamRegistration      = "team_registration"
	TxnTypePayout                = "payout"
	TxnTypeOther                 = "other"
)

// Payout statuses.
const (
	PayoutStatusPending    = "pending"
	PayoutStatusProcessing = "processing"
	PayoutStatusCompleted  = "completed"
	PayoutStatusFailed     = "failed"
)

const (
	PayoutTypePrize  = "prize"
	PayoutTypeRefund = "refund"
	PayoutTypeOther  = "other"
)

// Webhook event kinds emitted by Razorpay.
const (
	EventPaymentAuthorized = "payment.authorized"
	EventPaymentCaptured   = "payment.captured"
	EventPaymentFailed     = "payment.failed"
	EventPayoutInitiated   = "payout.initiated"
	EventPayoutProcessed   = "payout.processed"
	EventPayoutReversed    = "payout.reversed"
	EventPayoutFailed      = "payout.failed"
)
