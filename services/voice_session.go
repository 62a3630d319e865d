package services

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/kisansetu/kisan-voice-backend/errors"
	"github.com/kisansetu/kisan-voice-backend/logger"
	"github.com/kisansetu/kisan-voice-backend/nlu"
	"github.com/kisansetu/kisan-voice-backend/store"
	"github.com/kisansetu/kisan-voice-backend/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder is the external audio-capture collaborator. Start acquires the
// capture resource; Stop releases it on every call and hands back the
// transcription of what was captured. Implementations must guarantee the
// resource is released even when Stop returns an error.
type Recorder interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (types.TranscriptionInput, error)
}

// VoiceSession owns one user's voice interaction cycle:
// idle -> recording -> processing -> success|error -> idle (on reset).
// At most one recording/processing cycle is in flight at a time; calls that
// would start a second one are rejected.
type VoiceSession struct {
	mu         sync.Mutex
	state      types.SessionState
	recorder   Recorder
	pipeline   *VoiceService
	history    store.CommandStore
	lastResult *types.VoiceResult
	log        *zap.SugaredLogger
}

func NewVoiceSession(recorder Recorder, pipeline *VoiceService, history store.CommandStore) *VoiceSession {
	return &VoiceSession{
		state:    types.SessionIdle,
		recorder: recorder,
		pipeline: pipeline,
		history:  history,
		log:      logger.GetLogger(),
	}
}

// State returns the current session state.
func (s *VoiceSession) State() types.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastResult returns the result of the most recently completed cycle, or nil
// if none has completed since the last reset.
func (s *VoiceSession) LastResult() *types.VoiceResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// StartRecording transitions idle -> recording, acquiring the capture
// resource. A terminal state (success/error) is implicitly reset first, so a
// user tapping the control again starts a fresh cycle. Starting while a
// recording or processing cycle is in flight is rejected.
func (s *VoiceSession) StartRecording(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case types.SessionRecording:
		return apperrors.InvalidStateTransition(string(s.state), "start recording")
	case types.SessionProcessing:
		return apperrors.InvalidStateTransition(string(s.state), "start recording")
	case types.SessionSuccess, types.SessionError:
		// Re-engaging from a terminal state resets and records again.
		s.lastResult = nil
		s.state = types.SessionIdle
	}

	if err := s.recorder.Start(ctx); err != nil {
		// Acquisition failure is fatal for this cycle: straight to the
		// error state, never entering recording.
		s.state = types.SessionError
		s.log.Errorw("Recorder acquisition failed", "error", err)
		return apperrors.RecorderUnavailable(err)
	}

	s.state = types.SessionRecording
	return nil
}

// StopRecording transitions recording -> processing, runs the pipeline as one
// awaited unit, and lands in a terminal state. Stopping early is a normal
// transition, not an error. Exactly one history record is appended per
// completed cycle.
func (s *VoiceSession) StopRecording(ctx context.Context) (types.VoiceResult, error) {
	s.mu.Lock()
	if s.state != types.SessionRecording {
		state := s.state
		s.mu.Unlock()
		return types.VoiceResult{}, apperrors.InvalidStateTransition(string(state), "stop recording")
	}
	s.state = types.SessionProcessing
	s.mu.Unlock()

	// Stop always releases the capture resource, whether or not it manages
	// to hand back a transcription.
	input, err := s.recorder.Stop(ctx)

	var result types.VoiceResult
	if err != nil {
		s.log.Errorw("Recorder stop failed", "error", err)
		result = types.VoiceResult{
			Success: false,
			Message: "Could not capture your voice. Please try again.",
			Error:   err.Error(),
		}
	} else {
		result = s.pipeline.Process(ctx, input)
	}

	s.complete(ctx, input.Text, result)
	return result, nil
}

// complete records the terminal state and appends the cycle to history.
func (s *VoiceSession) complete(ctx context.Context, transcription string, result types.VoiceResult) {
	s.mu.Lock()
	if result.Success {
		s.state = types.SessionSuccess
	} else {
		s.state = types.SessionError
	}
	s.lastResult = &result
	s.mu.Unlock()

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

	if err := s.history.Append(ctx, cmd); err != nil {
		// History is best effort; the cycle outcome stands.
		s.log.Errorw("Failed to append voice command to history", "error", err)
	}
}

// Reset returns a terminal session to idle. Resetting an idle session is a
// no-op; resetting mid-cycle is rejected.
func (s *VoiceSession) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case types.SessionRecording, types.SessionProcessing:
		return apperrors.InvalidStateTransition(string(s.state), "reset")
	}

	s.state = types.SessionIdle
	s.lastResult = nil
	return nil
}

// History lists the retained command history, most recent first.
func (s *VoiceSession) History(ctx context.Context) ([]types.VoiceCommand, error) {
	return s.history.List(ctx)
}
