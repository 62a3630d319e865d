package types

// OrderCreate is the JSON body posted to the marketplace orders endpoint.
type OrderCreate struct {
	CropType string `json:"cropType"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Notes    string `json:"notes,omitempty"`
}

// ListingCreate is the JSON body posted to the marketplace listings endpoint.
type ListingCreate struct {
	Title       string `json:"title"`
	CropType    string `json:"cropType"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	Price       int    `json:"price"`
	Description string `json:"description,omitempty"`
}

// MarketplaceResponse is the (partial) response body of a create call.
// The id field is optional; the dispatcher degrades gracefully without it.
type MarketplaceResponse struct {
	ID string `json:"id,omitempty"`
}

// ConfirmationAction names the downstream create a user confirmed.
type ConfirmationAction string

const (
	ConfirmCreateOrder   ConfirmationAction = "create_order"
	ConfirmCreateListing ConfirmationAction = "create_listing"
)

// ConfirmationRequest is the JSON body of an explicit user confirmation.
type ConfirmationRequest struct {
	Action ConfirmationAction `json:"action" binding:"required"`
	Intent ExtractedIntent    `json:"intent" binding:"required"`
}

// ConfirmationOutcome reports the dispatcher result to the caller.
type ConfirmationOutcome struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	OrderID   string `json:"orderId,omitempty"`
	ListingID string `json:"listingId,omitempty"`
}
