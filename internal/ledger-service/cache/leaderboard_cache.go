package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/edgeplay-ledger/internal/ledger-service/dto"
)

const keyLeaderboard = "ledger:leaderboard:current"

// LeaderboardCache guarda o último snapshot do leaderboard e avisa os assinantes.
// Client: cliente Redis
// TTL: tempo de expiração do snapshot
// Channel: canal Pub/Sub lido pelo hub WebSocket
type LeaderboardCache struct {
	Client  *redis.Client
	TTL     time.Duration
	Channel string
}

func NewLeaderboardCache(c *redis.Client, ttl time.Duration, channel string) *LeaderboardCache {
	return &LeaderboardCache{Client: c, TTL: ttl, Channel: channel}
}

// Snapshot é o payload gravado e difundido
type Snapshot struct {
	Entries   []dto.LeaderboardEntry `json:"entries"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// Store grava o snapshot com TTL e publica no canal
func (c *LeaderboardCache) Store(ctx context.Context, s Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := c.Client.Set(ctx, keyLeaderboard, b, c.TTL).Err(); err != nil {
		return err
	}
	return c.Client.Publish(ctx, c.Channel, b).Err()
}

// Get retorna o snapshot atual; false quando ausente ou expirado
func (c *LeaderboardCache) Get(ctx context.Context) (Snapshot, bool, error) {
	var s Snapshot
	b, err := c.Client.Get(ctx, keyLeaderboard).Bytes()
	if err == redis.Nil {
		return s, false, nil
	}
	if err != nil {
		return s, false, err
	}
	return s, true, json.Unmarshal(b, &s)
}
