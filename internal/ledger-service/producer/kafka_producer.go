package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/edgeplay-ledger/pkg/contracts/events"
)

// MessageWriter é o subconjunto do kafka.Writer usado aqui
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher publica os eventos do ledger, um writer por tópico
type KafkaPublisher struct {
	Settled MessageWriter // tópico bet_settled
	Created MessageWriter // tópico account_created
}

func NewKafkaPublisher(settled, created MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Settled: settled, Created: created}
}

// PublishBetSettled usa o BetID como chave para manter a aposta numa partição só
func (p *KafkaPublisher) PublishBetSettled(ctx context.Context, e events.BetSettled) error {
	if e.Ts.IsZero() {
		e.Ts = time.Now()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal bet_settled: %w", err)
	}
	return write(ctx, p.Settled, e.BetID, b)
}

// PublishAccountCreated usa o e-mail como chave
func (p *KafkaPublisher) PublishAccountCreated(ctx context.Context, e events.AccountCreated) error {
	if e.Ts.IsZero() {
		e.Ts = time.Now()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal account_created: %w", err)
	}
	return write(ctx, p.Created, e.Email, b)
}

func write(ctx context.Context, w MessageWriter, key string, payload []byte) error {
	return w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: payload, Time: time.Now()})
}
