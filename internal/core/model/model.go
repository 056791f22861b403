package model

import "time"

// Outcome identifica o resultado de uma partida (1X2)
type Outcome string

const (
	OutcomeHome      Outcome = "H"
	OutcomeDraw      Outcome = "D"
	OutcomeAway      Outcome = "A"
	OutcomeUndecided Outcome = "" // partida sem resultado definido
)

// Valid aceita apenas H, D ou A
func (o Outcome) Valid() bool {
	return o == OutcomeHome || o == OutcomeDraw || o == OutcomeAway
}

// BetState é o estado de liquidação de uma aposta
type BetState string

const (
	BetPending BetState = "PENDING"
	BetWon     BetState = "WON"
	BetLost    BetState = "LOST"
)

// Odds decimais para cada resultado possível
type Odds struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// For retorna a odd do resultado escolhido
func (o Odds) For(out Outcome) (float64, bool) {
	switch out {
	case OutcomeHome:
		return o.Home, true
	case OutcomeDraw:
		return o.Draw, true
	case OutcomeAway:
		return o.Away, true
	}
	return 0, false
}

// Match é uma partida semeada no início do processo
type Match struct {
	MatchID  string  `json:"matchId"`
	HomeTeam string  `json:"homeTeam"`
	AwayTeam string  `json:"awayTeam"`
	Odds     Odds    `json:"odds"`
	Result   Outcome `json:"result"`
}

// Decided informa se a partida já tem resultado
func (m Match) Decided() bool { return m.Result != OutcomeUndecided }

// OutcomeLabel descreve o palpite em termos dos times da partida
func (m Match) OutcomeLabel(o Outcome) string {
	switch o {
	case OutcomeHome:
		return m.HomeTeam + " Win"
	case OutcomeDraw:
		return "Draw"
	case OutcomeAway:
		return m.AwayTeam + " Win"
	}
	return string(o)
}

// Bet é liquidada uma única vez no momento em que é feita
type Bet struct {
	BetID    string    `json:"betId"`
	MatchID  string    `json:"matchId"`
	Outcome  Outcome   `json:"outcome"`
	Stake    float64   `json:"stake"`
	State    BetState  `json:"state"`
	Payout   float64   `json:"payout"`
	PlacedAt time.Time `json:"placedAt"`
}

// NetProfit é o retorno líquido da aposta (payout - stake)
func (b Bet) NetProfit() float64 { return b.Payout - b.Stake }

// User é tratado como valor: alterações geram um novo registro
type User struct {
	Username        string
	Email           string // normalizado em minúsculas, chave única
	Password        string // texto puro, apenas demo
	StartingBalance float64
	Balance         float64
	Bets            []Bet // ordem de inserção = ordem cronológica
}

// Profit é o saldo atual menos o saldo inicial
func (u User) Profit() float64 { return u.Balance - u.StartingBalance }

// WithSettledBet devolve uma cópia do usuário com o novo saldo e a aposta anexada.
// O slice de apostas é sempre novo para não compartilhar memória com o registro antigo.
func (u User) WithSettledBet(b Bet, newBalance float64) User {
	bets := make([]Bet, len(u.Bets), len(u.Bets)+1)
	copy(bets, u.Bets)
	u.Bets = append(bets, b)
	u.Balance = newBalance
	return u
}

// TeamStats são contadores estáticos da tabela de classificação
type TeamStats struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// Points segue a regra padrão: vitória vale 3, empate vale 1
func (s TeamStats) Points() int { return s.Wins*3 + s.Draws }
