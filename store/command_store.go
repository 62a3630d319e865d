// Package store provides the bounded voice-command history store.
package store

import (
	"context"

	"github.com/kisansetu/kisan-voice-backend/types"
)

// Error Handling Guidelines:
// - Services/Stores: Use fmt.Errorf("context: %w", err) for wrapping errors
// - Handlers: Use apperrors.* functions for HTTP-appropriate errors

// HistoryLimit caps the number of retained voice commands. The list is
// most-recent-first; the oldest entry is evicted once the cap is exceeded.
const HistoryLimit = 10

// CommandStore retains completed voice-command cycles, most recent first.
type CommandStore interface {
	// Append records one completed cycle at the head of the history,
	// evicting beyond HistoryLimit.
	Append(ctx context.Context, cmd types.VoiceCommand) error

	// List returns the retained history, most recent first.
	List(ctx context.Context) ([]types.VoiceCommand, error)

	// Clear drops all retained history.
	Clear(ctx context.Context) error
}
