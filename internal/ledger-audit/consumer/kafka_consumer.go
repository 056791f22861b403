package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/edgeplay-ledger/pkg/contracts/events"
)

// Source entrega a próxima mensagem (chave, valor) do tópico
type Source func(ctx context.Context) (key, value []byte, err error)

// Sink persiste um evento decodificado
type Sink interface {
	InsertSettled(ctx context.Context, e events.BetSettled) error
}

// Processor consome bet_settled do Kafka e grava a auditoria no banco
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log  *zap.Logger
	Next Source
	Repo Sink
	DLQ  func(ctx context.Context, key, value []byte) error // opcional

	OnConsumed func()       // métricas (counter++)
	OnPersist  func()       // métricas
	OnError    func(string) // métricas por fase
}

var errInvalidEvent = errors.New("bet_settled without bet_id")

// Run inicia o loop principal de consumo e processamento das mensagens Kafka
func (p *Processor) Run(ctx context.Context) error {
	for {
		key, value, err := p.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			p.fail("read")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed() // callback de métrica: mensagem consumida
		}

		if err := p.Handle(ctx, value); err != nil {
			p.Log.Warn("bet_settled not audited", zap.ByteString("key", key), zap.Error(err))
			if p.DLQ != nil {
				if derr := p.DLQ(ctx, key, value); derr != nil {
					p.Log.Error("dlq publish failed", zap.Error(derr))
					p.fail("dlq")
				}
			}
		}
	}
}

// Handle decodifica e persiste uma mensagem
func (p *Processor) Handle(ctx context.Context, value []byte) error {
	var ev events.BetSettled
	if err := json.Unmarshal(value, &ev); err != nil {
		p.fail("decode")
		return err
	}
	if ev.BetID == "" {
		p.fail("decode")
		return errInvalidEvent
	}

	if err := p.Repo.InsertSettled(ctx, ev); err != nil {
		p.fail("db_insert")
		return err
	}
	if p.OnPersist != nil {
		p.OnPersist() // callback de métrica: persistência concluída
	}
	return nil
}

func (p *Processor) fail(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}
