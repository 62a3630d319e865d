package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/kisansetu/kisan-voice-backend/types"
)

// ClientRecorder adapts a remote client that captures audio on its own
// device into the Recorder interface. Start is a logical acquisition (the
// client holds the actual microphone); Stop hands back the transcription the
// client submitted for the cycle. Stop consumes the pending transcription so
// a value can never leak into a later cycle.
type ClientRecorder struct {
	mu      sync.Mutex
	pending *types.TranscriptionInput
}

var _ Recorder = (*ClientRecorder)(nil)

func NewClientRecorder() *ClientRecorder {
	return &ClientRecorder{}
}

// Provide stages the transcription for the next Stop call.
func (r *ClientRecorder) Provide(input types.TranscriptionInput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = &input
}

func (r *ClientRecorder) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = nil
	return nil
}

func (r *ClientRecorder) Stop(_ context.Context) (types.TranscriptionInput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		return types.TranscriptionInput{}, fmt.Errorf("no transcription submitted for this recording")
	}

	input := *r.pending
	r.pending = nil
	return input, nil
}
