package events

import "time"

// Evento publicado no tópico "account_created"
type AccountCreated struct {
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	StartingBalance float64   `json:"starting_balance"`
	Ts              time.Time `json:"ts"`
}
