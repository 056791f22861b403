package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/edgeplay-ledger/internal/core/model"
	"github.com/radieske/edgeplay-ledger/internal/core/ranking"
	"github.com/radieske/edgeplay-ledger/internal/core/settlement"
)

func TestCreateInitialMatches_WellFormed(t *testing.T) {
	matches := CreateInitialMatches()
	require.NotEmpty(t, matches)

	for id, m := range matches {
		assert.Equal(t, id, m.MatchID)
		assert.True(t, m.Result.Valid(), "match %s should have a fixed result", id)
		assert.Greater(t, m.Odds.Home, 0.0)
		assert.Greater(t, m.Odds.Draw, 0.0)
		assert.Greater(t, m.Odds.Away, 0.0)
	}
}

func TestCreateInitialUsers_KeysAndHistory(t *testing.T) {
	users := CreateInitialUsers()
	matches := CreateInitialMatches()
	require.NotEmpty(t, users)

	for key, u := range users {
		assert.Equal(t, strings.ToLower(u.Email), key)
		assert.Equal(t, StartingBalance, u.StartingBalance)

		// o saldo semeado precisa bater com a liquidação das apostas semeadas
		balance := u.StartingBalance
		for _, b := range u.Bets {
			m, ok := matches[b.MatchID]
			require.True(t, ok, "bet %s references unknown match", b.BetID)

			replay := model.Bet{Outcome: b.Outcome, Stake: b.Stake, State: model.BetPending}
			settlement.Settle(&replay, m)
			assert.Equal(t, b.State, replay.State, b.BetID)
			assert.InDelta(t, b.Payout, replay.Payout, 1e-9, b.BetID)

			balance = balance - b.Stake + b.Payout
		}
		assert.InDelta(t, u.Balance, balance, 1e-9, key)
	}
}

func TestCreateTeamStats_Standings(t *testing.T) {
	table := ranking.RankTeamsByPoints(CreateTeamStats())
	require.Len(t, table, 20)

	assert.Equal(t, "Real Madrid", table[0].Team)
	assert.Equal(t, "Levante", table[len(table)-1].Team)
	// Cádiz, Getafe e Mallorca empatam com 8 pontos
	assert.Equal(t, "Cádiz", table[14].Team)
	assert.Equal(t, "Getafe", table[15].Team)
	assert.Equal(t, "Mallorca", table[16].Team)
}
