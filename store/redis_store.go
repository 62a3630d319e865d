package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kisansetu/kisan-voice-backend/types"
	"github.com/redis/go-redis/v9"
)

// RedisCommandStore keeps the history in a Redis list so it survives process
// restarts. LPUSH + LTRIM maintain the most-recent-first order and the
// HistoryLimit cap server-side.
type RedisCommandStore struct {
	client *redis.Client
	key    string
}

var _ CommandStore = (*RedisCommandStore)(nil)

func NewRedisCommandStore(client *redis.Client) *RedisCommandStore {
	return &RedisCommandStore{
		client: client,
		key:    "voice:history",
	}
}

func (s *RedisCommandStore) Append(ctx context.Context, cmd types.VoiceCommand) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("marshal voice command: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, payload)
	pipe.LTrim(ctx, s.key, 0, HistoryLimit-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append voice command: %w", err)
	}
	return nil
}

func (s *RedisCommandStore) List(ctx context.Context) ([]types.VoiceCommand, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, HistoryLimit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list voice commands: %w", err)
	}

	commands := make([]types.VoiceCommand, 0, len(raw))
	for _, entry := range raw {
		var cmd types.VoiceCommand
		if err := json.Unmarshal([]byte(entry), &cmd); err != nil {
			// Skip records that fail to decode rather than failing the
			// whole listing.
			continue
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

func (s *RedisCommandStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear voice history: %w", err)
	}
	return nil
}
