// Package seed fornece os dados fixos carregados no início do processo:
// contas de demonstração, partidas com odds e resultado definidos e a
// tabela de classificação estática.
package seed

import (
	"time"

	"github.com/radieske/edgeplay-ledger/internal/core/model"
)

// StartingBalance é o saldo de toda conta nova
const StartingBalance = 100.0

var seededAt = time.Date(2024, time.October, 1, 12, 0, 0, 0, time.UTC)

// CreateInitialMatches retorna as partidas de demonstração indexadas por MatchID
func CreateInitialMatches() map[string]model.Match {
	list := []model.Match{
		{MatchID: "m1", HomeTeam: "Real Madrid", AwayTeam: "Barcelona", Odds: model.Odds{Home: 2.10, Draw: 3.40, Away: 3.20}, Result: model.OutcomeHome},
		{MatchID: "m2", HomeTeam: "Atletico", AwayTeam: "Sevilla", Odds: model.Odds{Home: 1.85, Draw: 3.50, Away: 4.20}, Result: model.OutcomeDraw},
		{MatchID: "m3", HomeTeam: "Villarreal", AwayTeam: "Real Sociedad", Odds: model.Odds{Home: 2.40, Draw: 3.10, Away: 2.90}, Result: model.OutcomeAway},
		{MatchID: "m4", HomeTeam: "Valencia", AwayTeam: "Real Betis", Odds: model.Odds{Home: 2.60, Draw: 3.20, Away: 2.70}, Result: model.OutcomeHome},
		{MatchID: "m5", HomeTeam: "Athletic Bilbao", AwayTeam: "Osasuna", Odds: model.Odds{Home: 1.70, Draw: 3.60, Away: 5.00}, Result: model.OutcomeHome},
		{MatchID: "m6", HomeTeam: "Girona", AwayTeam: "Celta Vigo", Odds: model.Odds{Home: 2.20, Draw: 3.30, Away: 3.10}, Result: model.OutcomeDraw},
		{MatchID: "m7", HomeTeam: "Granada", AwayTeam: "Las Palmas", Odds: model.Odds{Home: 2.30, Draw: 3.20, Away: 3.00}, Result: model.OutcomeAway},
		{MatchID: "m8", HomeTeam: "Getafe", AwayTeam: "Mallorca", Odds: model.Odds{Home: 2.50, Draw: 2.90, Away: 3.00}, Result: model.OutcomeDraw},
	}

	out := make(map[string]model.Match, len(list))
	for _, m := range list {
		out[m.MatchID] = m
	}
	return out
}

// CreateInitialUsers retorna as contas de demonstração indexadas pelo e-mail normalizado.
// Os saldos já refletem o histórico de apostas semeado.
func CreateInitialUsers() map[string]model.User {
	list := initialUsers()
	out := make(map[string]model.User, len(list))
	for _, u := range list {
		out[u.Email] = u
	}
	return out
}

// InitialUserOrder devolve os e-mails semeados na ordem em que são definidos
func InitialUserOrder() []string {
	list := initialUsers()
	out := make([]string, 0, len(list))
	for _, u := range list {
		out = append(out, u.Email)
	}
	return out
}

func initialUsers() []model.User {
	return []model.User{
		{
			Username: "Demo", Email: "demo@edgeplay.ie", Password: "demo123",
			StartingBalance: StartingBalance, Balance: StartingBalance,
		},
		{
			Username: "Alice", Email: "alice@edgeplay.ie", Password: "alice123",
			StartingBalance: StartingBalance, Balance: 122,
			Bets: []model.Bet{
				{BetID: "seed-alice-1", MatchID: "m1", Outcome: model.OutcomeHome, Stake: 20, State: model.BetWon, Payout: 42, PlacedAt: seededAt},
			},
		},
		{
			Username: "Bob", Email: "bob@edgeplay.ie", Password: "bob123",
			StartingBalance: StartingBalance, Balance: 70,
			Bets: []model.Bet{
				{BetID: "seed-bob-1", MatchID: "m2", Outcome: model.OutcomeHome, Stake: 30, State: model.BetLost, PlacedAt: seededAt},
			},
		},
		{
			Username: "Carla", Email: "carla@edgeplay.ie", Password: "carla123",
			StartingBalance: StartingBalance, Balance: 125,
			Bets: []model.Bet{
				{BetID: "seed-carla-1", MatchID: "m5", Outcome: model.OutcomeHome, Stake: 50, State: model.BetWon, Payout: 85, PlacedAt: seededAt},
				{BetID: "seed-carla-2", MatchID: "m3", Outcome: model.OutcomeHome, Stake: 10, State: model.BetLost, PlacedAt: seededAt.Add(time.Hour)},
			},
		},
	}
}

// CreateTeamStats retorna a tabela estática exibida na tela de estatísticas
func CreateTeamStats() map[string]model.TeamStats {
	return map[string]model.TeamStats{
		"Real Madrid":     {Played: 10, Wins: 8, Draws: 1, Losses: 1},
		"Barcelona":       {Played: 10, Wins: 7, Draws: 2, Losses: 1},
		"Atletico":        {Played: 10, Wins: 6, Draws: 2, Losses: 2},
		"Villarreal":      {Played: 10, Wins: 6, Draws: 1, Losses: 3},
		"Real Sociedad":   {Played: 10, Wins: 5, Draws: 3, Losses: 2},
		"Sevilla":         {Played: 10, Wins: 5, Draws: 2, Losses: 3},
		"Athletic Bilbao": {Played: 10, Wins: 4, Draws: 4, Losses: 2},
		"Real Betis":      {Played: 10, Wins: 4, Draws: 3, Losses: 3},
		"Valencia":        {Played: 10, Wins: 4, Draws: 2, Losses: 4},
		"Celta Vigo":      {Played: 10, Wins: 3, Draws: 4, Losses: 3},
		"Osasuna":         {Played: 10, Wins: 3, Draws: 3, Losses: 4},
		"Granada":         {Played: 10, Wins: 3, Draws: 2, Losses: 5},
		"Las Palmas":      {Played: 10, Wins: 3, Draws: 1, Losses: 6},
		"Girona":          {Played: 10, Wins: 2, Draws: 3, Losses: 5},
		"Cádiz":           {Played: 10, Wins: 2, Draws: 2, Losses: 6},
		"Getafe":          {Played: 10, Wins: 2, Draws: 2, Losses: 6},
		"Mallorca":        {Played: 10, Wins: 2, Draws: 2, Losses: 6},
		"Rayo Vallecano":  {Played: 10, Wins: 2, Draws: 1, Losses: 7},
		"Almería":         {Played: 10, Wins: 1, Draws: 3, Losses: 6},
		"Levante":         {Played: 10, Wins: 1, Draws: 2, Losses: 7},
	}
}
