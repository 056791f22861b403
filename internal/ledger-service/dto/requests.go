package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PlaceBetRequest struct {
	MatchID string  `json:"matchId"`
	Outcome string  `json:"outcome"` // "H" | "D" | "A"
	Stake   float64 `json:"stake"`
}
