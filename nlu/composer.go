package nlu

import (
	"fmt"

	"github.com/kisansetu/kisan-voice-backend/types"
)

// Confidence is attached to every successful composition. It is a fixed
// placeholder rather than a value derived from match quality; keep it
// constant so payloads stay comparable.
const Confidence = 0.85

// Composition is the user-facing reading of an extracted intent.
type Composition struct {
	Message          string
	Suggestions      []string
	CanCreateOrder   bool
	CanCreateListing bool
}

// Compose turns an extracted intent into a conversational message plus
// follow-up suggestions. Pure and deterministic: keyed entirely off the
// action and which entity fields are present.
func Compose(intent types.ExtractedIntent) Composition {
	switch intent.Action {
	case types.ActionCreateListing:
		return composeListing(intent)
	case types.ActionSearchListings:
		return composeSearch(intent)
	case types.ActionCheckOrders:
		return Composition{
			Message: "Fetching your recent orders...",
			Suggestions: []string{
				"Show pending orders",
				"Show completed orders",
			},
		}
	case types.ActionCheckPrices:
		return composePrices(intent)
	default:
		return Composition{
			Message: "Sorry, I didn't understand that. You can sell a crop, search listings, check your orders, or ask for prices.",
			Suggestions: []string{
				"Sell 100 kg tomato at 40 rupees",
				"What is the price of onion",
				"Show my orders",
			},
		}
	}
}

func composeListing(intent types.ExtractedIntent) Composition {
	if intent.CropType != "" && intent.Quantity != nil && intent.Price != nil {
		unit := intent.Unit
		if unit == "" {
			unit = "kg"
		}
		return Composition{
			Message: fmt.Sprintf("You want to sell %d %s of %s at ₹%d. Should I create this listing?",
				*intent.Quantity, unit, intent.CropType, *intent.Price),
			Suggestions: []string{
				"Yes, create listing",
				"Change quantity",
				"Change price",
			},
			CanCreateListing: true,
		}
	}

	return Composition{
		Message: "Please tell me the crop, quantity and price together.",
		Suggestions: []string{
			"Sell 100 kg tomato at 40 rupees",
			"Sell 50 kg onion at 25 rupees",
		},
	}
}

func composeSearch(intent types.ExtractedIntent) Composition {
	comp := Composition{
		// Static examples regardless of what was extracted.
		Suggestions: []string{
			"Buy tomato",
			"Buy onion",
			"Buy rice",
		},
	}

	if intent.CropType == "" {
		comp.Message = "Which crop would you like to buy?"
		return comp
	}

	comp.Message = fmt.Sprintf("Searching for %s listings...", intent.CropType)
	// A buy intent carrying crop and quantity is complete enough to offer a
	// one-tap order confirmation.
	comp.CanCreateOrder = intent.Quantity != nil
	return comp
}

func composePrices(intent types.ExtractedIntent) Composition {
	comp := Composition{
		Suggestions: []string{
			"Tomato price",
			"Onion price",
		},
	}

	if intent.CropType == "" {
		comp.Message = "Which crop's price do you want to know?"
		return comp
	}

	// Canned range; an extracted price in the utterance is deliberately
	// ignored here.
	comp.Message = fmt.Sprintf("The current market price of %s is ₹40-50 per kg.", intent.CropType)
	return comp
}
