package settlement

import "github.com/radieske/edgeplay-ledger/internal/core/model"

// Settle liquida a aposta contra o resultado da partida e retorna o lucro líquido.
// Altera State e Payout da aposta; a partida não é modificada.
// Partida sem resultado deixa a aposta PENDING e retorna 0.
func Settle(bet *model.Bet, match model.Match) float64 {
	if !match.Decided() {
		return 0
	}

	if bet.Outcome == match.Result {
		odd, _ := match.Odds.For(bet.Outcome)
		bet.State = model.BetWon
		bet.Payout = bet.Stake * odd
	} else {
		bet.State = model.BetLost
		bet.Payout = 0
	}

	return bet.Payout - bet.Stake
}
