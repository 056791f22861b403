package events

import "time"

// Evento publicado no tópico "bet_settled" logo após a liquidação de uma aposta
type BetSettled struct {
	BetID     string    `json:"bet_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	MatchID   string    `json:"match_id"`
	Outcome   string    `json:"outcome"` // "H" | "D" | "A"
	Stake     float64   `json:"stake"`
	State     string    `json:"state"` // "WON" | "LOST" | "PENDING"
	Payout    float64   `json:"payout"`
	NetProfit float64   `json:"net_profit"`
	Balance   float64   `json:"balance"` // saldo do usuário após a aposta
	Ts        time.Time `json:"ts"`
}
