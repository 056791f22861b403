package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/edgeplay-ledger/internal/shared/db/dbtest"
	"github.com/radieske/edgeplay-ledger/pkg/contracts/events"
)

func TestInsertSettled(t *testing.T) {
	f := &dbtest.Fake{}
	r := NewPostgresRepo(dbtest.Open(t, f))
	ts := time.Date(2024, time.November, 3, 18, 30, 0, 0, time.UTC)

	err := r.InsertSettled(context.Background(), events.BetSettled{
		BetID: "b-1", Email: "ana@x.com", Username: "ana", MatchID: "m1", Outcome: "H",
		Stake: 10, State: "WON", Payout: 25, NetProfit: 15, Balance: 115, Ts: ts,
	})
	require.NoError(t, err)

	execs := f.Execs()
	require.Len(t, execs, 1)
	assert.Contains(t, execs[0].Query, "INSERT INTO bet_audit")
	assert.Contains(t, execs[0].Query, "ON CONFLICT (bet_id) DO NOTHING")
	require.Len(t, execs[0].Args, 11)
	assert.Equal(t, "b-1", execs[0].Args[0])
	assert.Equal(t, 15.0, execs[0].Args[8])
	assert.Equal(t, 115.0, execs[0].Args[9])
	assert.Equal(t, ts, execs[0].Args[10])
}

func TestInsertSettled_PropagatesError(t *testing.T) {
	f := &dbtest.Fake{ExecErr: errors.New("connection reset")}
	r := NewPostgresRepo(dbtest.Open(t, f))

	err := r.InsertSettled(context.Background(), events.BetSettled{BetID: "b-1"})
	assert.EqualError(t, err, "connection reset")
}
