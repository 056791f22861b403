package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/edgeplay-ledger/internal/core/ledger"
	"github.com/radieske/edgeplay-ledger/internal/ledger-service/cache"
	"github.com/radieske/edgeplay-ledger/internal/ledger-service/dto"
	"github.com/radieske/edgeplay-ledger/internal/ledger-service/metrics"
	"github.com/radieske/edgeplay-ledger/internal/ledger-service/ws"
	"github.com/radieske/edgeplay-ledger/pkg/contracts/events"
)

// EventPublisher publica os eventos do ledger (Kafka)
type EventPublisher interface {
	PublishBetSettled(context.Context, events.BetSettled) error
	PublishAccountCreated(context.Context, events.AccountCreated) error
}

// SnapshotStore grava o leaderboard e difunde aos assinantes (Redis)
type SnapshotStore interface {
	Store(context.Context, cache.Snapshot) error
}

// Notifier liga os callbacks do store a eventos, cache, WebSocket e métricas.
// Qualquer dependência nil é simplesmente ignorada; falhas são logadas e
// contadas, nunca revertem o que o store já gravou.
type Notifier struct {
	Log     *zap.Logger
	Events  EventPublisher
	Board   SnapshotStore
	Local   func(ws.Update) // broadcast direto no hub quando não há Redis
	Metrics *metrics.Collectors
	Timeout time.Duration
	Now     func() time.Time
}

// Attach registra os callbacks no store
func (n *Notifier) Attach(s *ledger.Store) {
	if n.Log == nil {
		n.Log = zap.NewNop()
	}
	if n.Now == nil {
		n.Now = time.Now
	}
	if n.Timeout == 0 {
		n.Timeout = 2 * time.Second
	}

	s.OnLogin = func(ok bool) {
		if n.Metrics != nil {
			n.Metrics.ObserveLogin(ok)
		}
	}
	s.OnRejected = func(op string, err error) {
		if n.Metrics != nil {
			n.Metrics.ObserveRejection(op, err)
		}
	}
	s.OnAccountCreated = func(e events.AccountCreated) {
		if n.Metrics != nil {
			n.Metrics.ObserveAccount(e)
		}
		n.publish("account_created", func(ctx context.Context) error {
			if n.Events == nil {
				return nil
			}
			return n.Events.PublishAccountCreated(ctx, e)
		})
		n.refreshLeaderboard(s)
	}
	s.OnBetSettled = func(e events.BetSettled) {
		if n.Metrics != nil {
			n.Metrics.ObserveBet(e)
		}
		n.publish("bet_settled", func(ctx context.Context) error {
			if n.Events == nil {
				return nil
			}
			return n.Events.PublishBetSettled(ctx, e)
		})
		n.refreshLeaderboard(s)
	}
}

func (n *Notifier) publish(sink string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), n.Timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		n.Log.Warn("publish failed", zap.String("sink", sink), zap.Error(err))
		if n.Metrics != nil {
			n.Metrics.PublishErrors.WithLabelValues(sink).Inc()
		}
	}
}

// refreshLeaderboard recalcula o ranking e envia para o Redis ou direto ao hub
func (n *Notifier) refreshLeaderboard(s *ledger.Store) {
	snap := cache.Snapshot{Entries: dto.NewLeaderboard(s.SortedUsers()), UpdatedAt: n.Now()}

	if n.Board != nil {
		n.publish("leaderboard", func(ctx context.Context) error { return n.Board.Store(ctx, snap) })
		return
	}
	if n.Local != nil {
		n.Local(ws.Update{Channel: ws.ChannelLeaderboard, Payload: snap})
	}
}
