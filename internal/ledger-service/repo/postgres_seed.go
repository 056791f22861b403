package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/radieske/edgeplay-ledger/internal/core/model"
)

// SeedRepo lê os dados iniciais (contas e partidas de demo) do Postgres.
// É usado só na subida do processo; o ledger nunca escreve de volta.
type SeedRepo struct {
	DB *sql.DB
}

func NewSeedRepo(db *sql.DB) *SeedRepo { return &SeedRepo{DB: db} }

// LoadMatches retorna as partidas indexadas por match_id; result NULL = pendente
func (r *SeedRepo) LoadMatches(ctx context.Context) (map[string]model.Match, error) {
	const q = `
		SELECT match_id, home_team, away_team, home_odd, draw_odd, away_odd, result
		FROM demo_matches
		ORDER BY match_id;
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query demo_matches: %w", err)
	}
	defer rows.Close()

	out := make(map[string]model.Match)
	for rows.Next() {
		var m model.Match
		var result sql.NullString
		if err := rows.Scan(&m.MatchID, &m.HomeTeam, &m.AwayTeam, &m.Odds.Home, &m.Odds.Draw, &m.Odds.Away, &result); err != nil {
			return nil, err
		}
		if result.Valid {
			m.Result = model.Outcome(result.String)
		}
		out[m.MatchID] = m
	}
	return out, rows.Err()
}

// LoadUsers retorna as contas indexadas pelo e-mail normalizado, já com o
// histórico de apostas em ordem cronológica
func (r *SeedRepo) LoadUsers(ctx context.Context) (map[string]model.User, error) {
	const qUsers = `
		SELECT email, username, password, starting_balance, balance
		FROM demo_users
		ORDER BY email;
	`
	rows, err := r.DB.QueryContext(ctx, qUsers)
	if err != nil {
		return nil, fmt.Errorf("query demo_users: %w", err)
	}
	defer rows.Close()

	out := make(map[string]model.User)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Email, &u.Username, &u.Password, &u.StartingBalance, &u.Balance); err != nil {
			return nil, err
		}
		u.Email = strings.ToLower(u.Email)
		out[u.Email] = u
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachBets(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SeedRepo) attachBets(ctx context.Context, users map[string]model.User) error {
	const q = `
		SELECT bet_id, lower(email), match_id, outcome, stake, state, payout, placed_at
		FROM demo_bets
		ORDER BY placed_at, bet_id;
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("query demo_bets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bet
		var email, outcome, state string
		if err := rows.Scan(&b.BetID, &email, &b.MatchID, &outcome, &b.Stake, &state, &b.Payout, &b.PlacedAt); err != nil {
			return err
		}
		u, ok := users[email]
		if !ok {
			continue // aposta órfã
		}
		b.Outcome = model.Outcome(outcome)
		b.State = model.BetState(state)
		u.Bets = append(u.Bets, b)
		users[email] = u
	}
	return rows.Err()
}
