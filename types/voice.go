package types

import (
	"time"
)

// VoiceAction classifies what the speaker wants to do.
type VoiceAction string

const (
	ActionCreateListing  VoiceAction = "CREATE_LISTING"
	ActionSearchListings VoiceAction = "SEARCH_LISTINGS"
	ActionCheckOrders    VoiceAction = "CHECK_ORDERS"
	ActionCheckPrices    VoiceAction = "CHECK_PRICES"
	ActionUnknown        VoiceAction = "UNKNOWN"
)

// SessionState is the current phase of a voice interaction cycle.
// Transitions are strictly sequential: idle -> recording -> processing ->
// success|error -> idle (on reset).
type SessionState string

const (
	SessionIdle       SessionState = "idle"
	SessionRecording  SessionState = "recording"
	SessionProcessing SessionState = "processing"
	SessionSuccess    SessionState = "success"
	SessionError      SessionState = "error"
)

// DefaultLanguage is assumed when the caller omits a language tag.
const DefaultLanguage = "hi-IN"

// TranscriptionInput is one transcribed utterance plus its language tag.
// It arrives once per recording session and is consumed exactly once.
type TranscriptionInput struct {
	Text     string `json:"transcription"`
	Language string `json:"language,omitempty"`
}

// ExtractedIntent is the structured reading of an utterance. Every entity
// field is independently optional; a missing field never invalidates the
// others. Action defaults to ActionUnknown when no trigger keyword matches.
type ExtractedIntent struct {
	Action   VoiceAction `json:"action"`
	CropType string      `json:"cropType,omitempty"`
	Quantity *int        `json:"quantity,omitempty"`
	Unit     string      `json:"unit,omitempty"`
	Price    *int        `json:"price,omitempty"`
	Location string      `json:"location,omitempty"`
}

// VoiceData carries the successful payload of a processed utterance.
type VoiceData struct {
	Transcription    string          `json:"transcription"`
	Language         string          `json:"language"`
	ExtractedData    ExtractedIntent `json:"extractedData"`
	Response         string          `json:"response"`
	Suggestions      []string        `json:"suggestions"`
	Confidence       float64         `json:"confidence"`
	CanCreateOrder   bool            `json:"canCreateOrder"`
	CanCreateListing bool            `json:"canCreateListing"`
	ListingID        string          `json:"listingId,omitempty"`
	OrderID          string          `json:"orderId,omitempty"`
}

// VoiceResult is produced once per utterance and never mutated afterwards.
type VoiceResult struct {
	Success     bool       `json:"success"`
	Message     string     `json:"message"`
	Data        *VoiceData `json:"data,omitempty"`
	Error       string     `json:"error,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

// VoiceCommand is a history record of one completed interaction cycle.
type VoiceCommand struct {
	ID            string      `json:"id"`
	Transcription string      `json:"transcription"`
	Action        VoiceAction `json:"action"`
	Result        VoiceResult `json:"result"`
	Confidence    float64     `json:"confidence"`
	Timestamp     time.Time   `json:"timestamp"`
}

// IntPtr is a convenience for building optional quantity/price values.
func IntPtr(v int) *int {
	return &v
}
