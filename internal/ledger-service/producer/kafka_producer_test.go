package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/edgeplay-ledger/pkg/contracts/events"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestPublishBetSettled(t *testing.T) {
	settled := &fakeWriter{}
	p := NewKafkaPublisher(settled, &fakeWriter{})
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	err := p.PublishBetSettled(context.Background(), events.BetSettled{
		BetID: "b-1", Email: "ana@x.com", MatchID: "m1", Outcome: "H",
		Stake: 10, State: "WON", Payout: 25, NetProfit: 15, Balance: 115, Ts: ts,
	})
	require.NoError(t, err)
	require.Len(t, settled.msgs, 1)
	assert.Equal(t, "b-1", string(settled.msgs[0].Key))

	var got events.BetSettled
	require.NoError(t, json.Unmarshal(settled.msgs[0].Value, &got))
	assert.Equal(t, "WON", got.State)
	assert.Equal(t, 115.0, got.Balance)
	assert.True(t, ts.Equal(got.Ts))
}

func TestPublishAccountCreated_FillsTimestamp(t *testing.T) {
	created := &fakeWriter{}
	p := NewKafkaPublisher(&fakeWriter{}, created)

	require.NoError(t, p.PublishAccountCreated(context.Background(), events.AccountCreated{Email: "ze@x.com", Username: "ze"}))
	require.Len(t, created.msgs, 1)
	assert.Equal(t, "ze@x.com", string(created.msgs[0].Key))

	var got events.AccountCreated
	require.NoError(t, json.Unmarshal(created.msgs[0].Value, &got))
	assert.False(t, got.Ts.IsZero())
}

func TestPublish_PropagatesWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := NewKafkaPublisher(&fakeWriter{err: boom}, &fakeWriter{err: boom})

	assert.ErrorIs(t, p.PublishBetSettled(context.Background(), events.BetSettled{BetID: "x"}), boom)
	assert.ErrorIs(t, p.PublishAccountCreated(context.Background(), events.AccountCreated{Email: "x"}), boom)
}
