package services

import (
	"context"
	"strings"

	"github.com/kisansetu/kisan-voice-backend/logger"
	"github.com/kisansetu/kisan-voice-backend/nlu"
	"github.com/kisansetu/kisan-voice-backend/types"
	"go.uber.org/zap"
)

// VoiceService runs the extract-then-compose pipeline over one transcribed
// utterance. It is the single unit of work between the recording and the
// terminal state of a session cycle.
type VoiceService struct {
	defaultLanguage string
	log             *zap.SugaredLogger
}

func NewVoiceService(defaultLanguage string) *VoiceService {
	if defaultLanguage == "" {
		defaultLanguage = types.DefaultLanguage
	}
	return &VoiceService{
		defaultLanguage: defaultLanguage,
		log:             logger.GetLogger(),
	}
}

// Process interprets one utterance and returns an immutable VoiceResult.
// Errors never escape: a missing transcription or an internal panic both
// surface as a failed result, not as a Go error.
func (s *VoiceService) Process(ctx context.Context, input types.TranscriptionInput) (result types.VoiceResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("Voice pipeline panicked", "recovered", r)
			result = types.VoiceResult{
				Success: false,
				Message: "Something went wrong while processing your command. Please try again.",
				Error:   "internal pipeline failure",
			}
		}
	}()

	if strings.TrimSpace(input.Text) == "" {
		return types.VoiceResult{
			Success: false,
			Message: "I didn't catch that. Please try speaking again.",
			Error:   "No transcription provided",
		}
	}

	language := input.Language
	if language == "" {
		language = s.defaultLanguage
	}

	intent := nlu.Extract(input.Text)
	comp := nlu.Compose(intent)

	s.log.Infow("Voice command processed",
		"action", intent.Action,
		"cropType", intent.CropType,
		"language", language,
	)

	return types.VoiceResult{
		Success:     true,
		Message:     comp.Message,
		Suggestions: comp.Suggestions,
		Data: &types.VoiceData{
			Transcription:    input.Text,
			Language:         language,
			ExtractedData:    intent,
			Response:         comp.Message,
			Suggestions:      comp.Suggestions,
			Confidence:       nlu.Confidence,
			CanCreateOrder:   comp.CanCreateOrder,
			CanCreateListing: comp.CanCreateListing,
		},
	}
}
