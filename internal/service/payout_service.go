package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hackpay/internal/apperr"
	"hackpay/internal/domain"
	"hackpay/internal/models"
	"hackpay/internal/repository"
	"hackpay/pkg/razorpay"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type TeamStore interface {
	GetByID(id uint) (*models.Team, error)
}

type BankDetailStore interface {
	PrimaryVerified(userID uint) (*models.BankDetail, error)
}

type PayoutStore interface {
	CreateWithTransaction(p *models.Payout, t *models.Transaction) error
}

type CreatePayoutInput struct {
	HackathonID uint
	TeamID      uint
	AmountPaise int64
	Type        string
	Notes       string
	CreatedBy   uint
}

type CreatePayoutResult struct {
	PayoutID         uint   `json:"payout_id"`
	TransactionID    uint   `json:"transaction_id"`
	RazorpayPayoutID string `json:"razorpay_payout_id"`
	Status           string `json:"status"`
}

// PayoutService is the payout-side initiator. It validates the recipient's
// destination before any external call, creates the processor payout, then
// persists the payout and its negative ledger leg in one atomic write.
type PayoutService struct {
	hackathons  HackathonStore
	teams       TeamStore
	users       UserStore
	bankDetails BankDetailStore
	payouts     PayoutStore
	failures    FailureStore
	rzp         razorpay.Client
	log         zerolog.Logger
}

func NewPayoutService(
	hackathons HackathonStore,
	teams TeamStore,
	users UserStore,
	bankDetails BankDetailStore,
	payouts PayoutStore,
	failures FailureStore,
	rzp razorpay.Client,
	log zerolog.Logger,
) *PayoutService {
	return &PayoutService{
		hackathons:  hackathons,
		teams:       teams,
		users:       users,
		bankDetails: bankDetails,
		payouts:     payouts,
		failures:    failures,
		rzp:         rzp,
		log:         log,
	}
}

func validPayoutType(t string) bool {
	return t == domain.PayoutTypePrize || t == domain.PayoutTypeRefund || t == domain.PayoutTypeOther
}

func (s *PayoutService) Create(ctx context.Context, in CreatePayoutInput) (*CreatePayoutResult, error) {
	if in.HackathonID == 0 || in.TeamID == 0 || in.AmountPaise <= 0 || in.Type == "" {
		return nil, apperr.New(apperr.KindValidation, "missing required fields")
	}
	if !validPayoutType(in.Type) {
		return nil, apperr.New(apperr.KindValidation, "invalid payout type")
	}

	hackathon, err := s.hackathons.GetByID(in.HackathonID)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "hackathon not found")
	}
	team, err := s.teams.GetByID(in.TeamID)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "team not found")
	}
	if team.HackathonID != hackathon.ID {
		return nil, apperr.New(apperr.KindValidation, "team does not belong to hackathon")
	}
	leader, err := s.users.GetByID(team.LeaderID)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "team leader not found")
	}

	// Destination guard runs before the external call: no verified primary
	// destination means no processor-side resource is ever created.
	bank, err := s.bankDetails.PrimaryVerified(leader.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNoPrimaryDestination) {
			return nil, apperr.New(apperr.KindValidation, "team leader has no verified primary bank destination")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "bank destination lookup failed", err)
	}

	referenceID := fmt.Sprintf("payout_%s", uuid.New().String())
	rzpPayout, err := s.rzp.CreatePayout(ctx, razorpay.PayoutRequest{
		AccountNumber: bank.AccountNumber,
		FundAccount: razorpay.FundAccount{
			AccountType: "bank_account",
			BankAccount: razorpay.BankAccount{
				Name:          bank.AccountHolderName,
				IFSC:          bank.IFSCCode,
				AccountNumber: bank.AccountNumber,
			},
			Contact: razorpay.Contact{
				Name:    leader.Name,
				Email:   leader.Email,
				Contact: leader.Phone,
				Type:    "vendor",
			},
		},
		Amount:            in.AmountPaise,
		Currency:          hackathon.Currency,
		Mode:              "IMPS",
		Purpose:           "payout",
		QueueIfLowBalance: true,
		ReferenceID:       referenceID,
		Narration:         fmt.Sprintf("Prize money for %s", hackathon.Title),
		Notes: map[string]string{
			"team":      team.Name,
			"hackathon": hackathon.Title,
		},
	})
	if err != nil {
		s.log.Error().Err(err).Uint("team_id", in.TeamID).Uint("hackathon_id", in.HackathonID).Msg("payout creation failed")
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to create payout", err)
	}

	payoutID := rzpPayout.ID
	meta, _ := json.Marshal(map[string]string{
		"notes":          in.Notes,
		"hackathon_name": hackathon.Title,
		"team_name":      team.Name,
		"reference_id":   referenceID,
	})
	payout := &models.Payout{
		UserID:            leader.ID,
		HackathonID:       in.HackathonID,
		TeamID:            in.TeamID,
		AmountPaise:       in.AmountPaise,
		Currency:          hackathon.Currency,
		Status:            domain.PayoutStatusPending,
		Type:              in.Type,
		RazorpayPayoutID:  &payoutID,
		AccountHolderName: bank.AccountHolderName,
		AccountNumber:     bank.AccountNumber,
		IFSCCode:          bank.IFSCCode,
		Contact:           leader.Phone,
		Email:             leader.Email,
		Metadata:          string(meta),
		CreatedBy:         in.CreatedBy,
	}
	hackathonID := in.HackathonID
	teamID := in.TeamID
	txnMeta, _ := json.Marshal(map[string]string{
		"notes": fmt.Sprintf("Payout for %s - %s", hackathon.Title, team.Name),
	})
	leg := &models.Transaction{
		UserID:           leader.ID,
		HackathonID:      &hackathonID,
		TeamID:           &teamID,
		AmountPaise:      -in.AmountPaise,
		Currency:         hackathon.Currency,
		Status:           domain.TxnStatusPending,
		Type:             domain.TxnTypePayout,
		RazorpayPayoutID: &payoutID,
		PaymentDetails:   models.PaymentMethodDetails{Method: "bank_transfer"}.Encode(),
		Metadata:         string(txnMeta),
	}
	if err := s.payouts.CreateWithTransaction(payout, leg); err != nil {
		s.recordFailure(payoutID, payout, err)
		return nil, apperr.Wrap(apperr.KindReconciliation, "payout created but local records failed", err)
	}

	return &CreatePayoutResult{
		PayoutID:         payout.ID,
		TransactionID:    leg.ID,
		RazorpayPayoutID: payoutID,
		Status:           payout.Status,
	}, nil
}

func (s *PayoutService) recordFailure(externalID string, record interface{}, cause error) {
	payload, _ := json.Marshal(record)
	f := &models.ReconciliationFailure{
		Kind:       "payout_create",
		ExternalID: externalID,
		Payload:    string(payload),
		Detail:     cause.Error(),
	}
	if err := s.failures.Record(f); err != nil {
		s.log.Error().Err(err).Str("external_id", externalID).RawJSON("payload", payload).Msg("dead-letter write failed")
		return
	}
	s.log.Error().Err(cause).Str("external_id", externalID).Msg("reconciliation required")
}
