package services

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/kisansetu/kisan-voice-backend/errors"
	"github.com/kisansetu/kisan-voice-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMarketplaceClient struct {
	mock.Mock
}

func (m *MockMarketplaceClient) CreateOrder(ctx context.Context, order types.OrderCreate) (*types.MarketplaceResponse, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MarketplaceResponse), args.Error(1)
}

func (m *MockMarketplaceClient) CreateListing(ctx context.Context, listing types.ListingCreate) (*types.MarketplaceResponse, error) {
	args := m.Called(ctx, listing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MarketplaceResponse), args.Error(1)
}

func TestConfirmationService_CreateListing(t *testing.T) {
	client := new(MockMarketplaceClient)
	svc := NewConfirmationService(client)

	client.On("CreateListing", mock.Anything, types.ListingCreate{
		Title:       "Fresh tomato - 100 kg",
		CropType:    "tomato",
		Quantity:    100,
		Unit:        "kg",
		Price:       40,
		Description: "Listed via voice command",
	}).Return(&types.MarketplaceResponse{ID: "lst-42"}, nil)

	outcome, err := svc.Confirm(context.Background(), types.ConfirmationRequest{
		Action: types.ConfirmCreateListing,
		Intent: types.ExtractedIntent{
			Action:   types.ActionCreateListing,
			CropType: "tomato",
			Quantity: types.IntPtr(100),
			Unit:     "kg",
			Price:    types.IntPtr(40),
		},
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, "lst-42", outcome.ListingID)
	assert.Contains(t, outcome.Message, "lst-42")
	client.AssertExpectations(t)
}

func TestConfirmationService_CreateOrder(t *testing.T) {
	client := new(MockMarketplaceClient)
	svc := NewConfirmationService(client)

	client.On("CreateOrder", mock.Anything, types.OrderCreate{
		CropType: "rice",
		Quantity: 20,
		Unit:     "kg",
		Notes:    "Created via voice command",
	}).Return(&types.MarketplaceResponse{ID: "ord-7"}, nil)

	outcome, err := svc.Confirm(context.Background(), types.ConfirmationRequest{
		Action: types.ConfirmCreateOrder,
		Intent: types.ExtractedIntent{
			Action:   types.ActionSearchListings,
			CropType: "rice",
			Quantity: types.IntPtr(20),
		},
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, "ord-7", outcome.OrderID)
	client.AssertExpectations(t)
}

// Downstream failure is absorbed into a soft-success "submitted" outcome,
// never escalated to the caller.
func TestConfirmationService_DownstreamFailureIsSoftSuccess(t *testing.T) {
	client := new(MockMarketplaceClient)
	svc := NewConfirmationService(client)

	client.On("CreateListing", mock.Anything, mock.Anything).
		Return(nil, errors.New("marketplace unreachable"))

	outcome, err := svc.Confirm(context.Background(), types.ConfirmationRequest{
		Action: types.ConfirmCreateListing,
		Intent: types.ExtractedIntent{
			CropType: "onion",
			Quantity: types.IntPtr(50),
			Price:    types.IntPtr(25),
		},
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Empty(t, outcome.ListingID)
	assert.Contains(t, outcome.Message, "submitted")
	client.AssertNumberOfCalls(t, "CreateListing", 1)
}

func TestConfirmationService_MissingIDStillSucceeds(t *testing.T) {
	client := new(MockMarketplaceClient)
	svc := NewConfirmationService(client)

	client.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&types.MarketplaceResponse{}, nil)

	outcome, err := svc.Confirm(context.Background(), types.ConfirmationRequest{
		Action: types.ConfirmCreateOrder,
		Intent: types.ExtractedIntent{
			CropType: "wheat",
			Quantity: types.IntPtr(5),
			Unit:     "quintal",
		},
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Empty(t, outcome.OrderID)
	assert.Contains(t, outcome.Message, "submitted")
}

func TestConfirmationService_IncompleteIntentRejected(t *testing.T) {
	client := new(MockMarketplaceClient)
	svc := NewConfirmationService(client)

	tests := []struct {
		name string
		req  types.ConfirmationRequest
	}{
		{"listing without price", types.ConfirmationRequest{
			Action: types.ConfirmCreateListing,
			Intent: types.ExtractedIntent{CropType: "tomato", Quantity: types.IntPtr(10)},
		}},
		{"order without quantity", types.ConfirmationRequest{
			Action: types.ConfirmCreateOrder,
			Intent: types.ExtractedIntent{CropType: "tomato"},
		}},
		{"unknown action", types.ConfirmationRequest{
			Action: "delete_everything",
			Intent: types.ExtractedIntent{CropType: "tomato"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Confirm(context.Background(), tt.req)
			require.Error(t, err)
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ValidationError, appErr.Type)
		})
	}

	// No downstream call was ever made.
	client.AssertNotCalled(t, "CreateListing", mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}
