package dto

import (
	"time"

	"github.com/radieske/edgeplay-ledger/internal/core/model"
	"github.com/radieske/edgeplay-ledger/internal/core/ranking"
)

// ResultResponse espelha ledger.Result para o cliente
type ResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"` // ex: INSUFFICIENT_BALANCE
}

type UserResponse struct {
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	StartingBalance float64 `json:"startingBalance"`
	Balance         float64 `json:"balance"`
	Profit          float64 `json:"profit"`
	Rank            int     `json:"rank,omitempty"`
	BetCount        int     `json:"betCount"`
}

type BetResponse struct {
	BetID        string    `json:"betId"`
	MatchID      string    `json:"matchId"`
	Match        string    `json:"match,omitempty"` // "Home vs Away"
	Outcome      string    `json:"outcome"`
	OutcomeLabel string    `json:"outcomeLabel,omitempty"`
	Stake        float64   `json:"stake"`
	State        string    `json:"state"`
	Payout       float64   `json:"payout"`
	NetProfit    float64   `json:"netProfit"`
	PlacedAt     time.Time `json:"placedAt"`
}

type PlaceBetResponse struct {
	ResultResponse
	Balance float64      `json:"balance"`
	Bet     *BetResponse `json:"bet,omitempty"`
}

type MatchResponse struct {
	MatchID  string     `json:"matchId"`
	HomeTeam string     `json:"homeTeam"`
	AwayTeam string     `json:"awayTeam"`
	Odds     model.Odds `json:"odds"`
	Result   string     `json:"result,omitempty"` // vazio = pendente
}

type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
	Profit   float64 `json:"profit"`
}

type StandingEntry struct {
	Position int    `json:"position"`
	Team     string `json:"team"`
	Played   int    `json:"played"`
	Wins     int    `json:"wins"`
	Draws    int    `json:"draws"`
	Losses   int    `json:"losses"`
	Points   int    `json:"points"`
}

func NewUserResponse(u model.User, rank int) UserResponse {
	return UserResponse{
		Username:        u.Username,
		Email:           u.Email,
		StartingBalance: u.StartingBalance,
		Balance:         u.Balance,
		Profit:          u.Profit(),
		Rank:            rank,
		BetCount:        len(u.Bets),
	}
}

// NewBetResponse monta a linha do histórico; match pode ser zero se a partida sumiu
func NewBetResponse(b model.Bet, m model.Match, found bool) BetResponse {
	out := BetResponse{
		BetID:     b.BetID,
		MatchID:   b.MatchID,
		Outcome:   string(b.Outcome),
		Stake:     b.Stake,
		State:     string(b.State),
		Payout:    b.Payout,
		NetProfit: b.NetProfit(),
		PlacedAt:  b.PlacedAt,
	}
	if found {
		out.Match = m.HomeTeam + " vs " + m.AwayTeam
		out.OutcomeLabel = m.OutcomeLabel(b.Outcome)
	}
	return out
}

func NewMatchResponse(m model.Match) MatchResponse {
	return MatchResponse{
		MatchID:  m.MatchID,
		HomeTeam: m.HomeTeam,
		AwayTeam: m.AwayTeam,
		Odds:     m.Odds,
		Result:   string(m.Result),
	}
}

func NewLeaderboard(sorted []model.User) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(sorted))
	for i, u := range sorted {
		out = append(out, LeaderboardEntry{
			Rank:     i + 1,
			Username: u.Username,
			Balance:  u.Balance,
			Profit:   u.Profit(),
		})
	}
	return out
}

func NewStandings(table []ranking.TeamStanding) []StandingEntry {
	out := make([]StandingEntry, 0, len(table))
	for i, t := range table {
		out = append(out, StandingEntry{
			Position: i + 1,
			Team:     t.Team,
			Played:   t.Stats.Played,
			Wins:     t.Stats.Wins,
			Draws:    t.Stats.Draws,
			Losses:   t.Stats.Losses,
			Points:   t.Points(),
		})
	}
	return out
}
