package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/kisansetu/kisan-voice-backend/errors"
	"github.com/kisansetu/kisan-voice-backend/logger"
	"github.com/kisansetu/kisan-voice-backend/nlu"
	"github.com/kisansetu/kisan-voice-backend/services"
	"github.com/kisansetu/kisan-voice-backend/store"
	"github.com/kisansetu/kisan-voice-backend/types"
)

// VoiceHandler exposes the voice-command pipeline, the interaction session
// and the confirmation dispatcher over JSON.
type VoiceHandler struct {
	voiceService *services.VoiceService
	session      *services.VoiceSession
	recorder     *services.ClientRecorder
	confirmation *services.ConfirmationService
	history      store.CommandStore
}

func NewVoiceHandler(
	voiceService *services.VoiceService,
	session *services.VoiceSession,
	recorder *services.ClientRecorder,
	confirmation *services.ConfirmationService,
	history store.CommandStore,
) *VoiceHandler {
	return &VoiceHandler{
		voiceService: voiceService,
		session:      session,
		recorder:     recorder,
		confirmation: confirmation,
		history:      history,
	}
}

// ProcessHandler interprets one transcribed utterance. Clients that record
// and transcribe on-device call this directly; the result is also appended
// to the command history.
func (h *VoiceHandler) ProcessHandler(c *gin.Context) {
	log := logger.GetLogger()

	var input types.TranscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Errorw("Invalid voice request body", "error", err)
		if err := c.Error(apperrors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	result := h.voiceService.Process(c.Request.Context(), input)

	h.appendHistory(c, input.Text, result)

	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmHandler dispatches an explicitly confirmed create-order or
// create-listing action to the marketplace.
func (h *VoiceHandler) ConfirmHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req types.ConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid confirmation body", "error", err)
		if err := c.Error(apperrors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	outcome, err := h.confirmation.Confirm(c.Request.Context(), req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to add confirmation error", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// HistoryHandler lists the retained voice commands, most recent first.
func (h *VoiceHandler) HistoryHandler(c *gin.Context) {
	log := logger.GetLogger()

	commands, err := h.history.List(c.Request.Context())
	if err != nil {
		log.Errorw("Failed to list voice history", "error", err)
		if err := c.Error(apperrors.InternalServerError("Failed to load history")); err != nil {
			log.Errorw("Failed to add history error", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    commands,
	})
}

// SessionStartHandler begins a recording cycle for transports that drive the
// session server-side.
func (h *VoiceHandler) SessionStartHandler(c *gin.Context) {
	if err := h.session.StartRecording(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.session.State()})
}

// SessionStopHandler ends the recording cycle, feeding the client-submitted
// transcription through the pipeline.
func (h *VoiceHandler) SessionStopHandler(c *gin.Context) {
	var input types.TranscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	h.recorder.Provide(input)

	result, err := h.session.StopRecording(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":  h.session.State(),
		"result": result,
	})
}

// SessionResetHandler returns a terminal session to idle.
func (h *VoiceHandler) SessionResetHandler(c *gin.Context) {
	if err := h.session.Reset(); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.session.State()})
}

// appendHistory records one processed utterance. History is best effort and
// never fails the request.
func (h *VoiceHandler) appendHistory(c *gin.Context, transcription string, result types.VoiceResult) {
	cmd := types.VoiceCommand{
		ID:            uuid.New().String(),
		Transcription: transcription,
		Action:        types.ActionUnknown,
		Result:        result,
		Timestamp:     time.Now().UTC(),
	}
	if result.Data != nil {
		cmd.Action = result.Data.ExtractedData.Action
		cmd.Confidence = nlu.Confidence
	}

	if err := h.history.Append(c.Request.Context(), cmd); err != nil {
		logger.GetLogger().Errorw("Failed to append voice command to history", "error", err)
	}
}
