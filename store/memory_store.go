package store

import (
	"context"
	"sync"

	"github.com/kisansetu/kisan-voice-backend/types"
)

// MemoryCommandStore is the default in-process history store. It holds at
// most HistoryLimit commands, most recent first.
type MemoryCommandStore struct {
	mu       sync.Mutex
	commands []types.VoiceCommand
}

var _ CommandStore = (*MemoryCommandStore)(nil)

func NewMemoryCommandStore() *MemoryCommandStore {
	return &MemoryCommandStore{}
}

func (s *MemoryCommandStore) Append(_ context.Context, cmd types.VoiceCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commands = append([]types.VoiceCommand{cmd}, s.commands...)
	if len(s.commands) > HistoryLimit {
		s.commands = s.commands[:HistoryLimit]
	}
	return nil
}

func (s *MemoryCommandStore) List(_ context.Context) ([]types.VoiceCommand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.VoiceCommand, len(s.commands))
	copy(out, s.commands)
	return out, nil
}

func (s *MemoryCommandStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commands = nil
	return nil
}
