package repository

import (
	"context"
	"database/sql"

	"github.com/radieske/edgeplay-ledger/pkg/contracts/events"
)

// PostgresRepo grava a trilha de auditoria das apostas liquidadas
// DB: conexão com o banco de dados
type PostgresRepo struct {
	DB *sql.DB
}

// NewPostgresRepo retorna uma instância de repositório Postgres
func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// InsertSettled insere a aposta na tabela bet_audit.
// ON CONFLICT garante idempotência quando o Kafka reentrega a mensagem.
func (r *PostgresRepo) InsertSettled(ctx context.Context, e events.BetSettled) error {
	const q = `
		INSERT INTO bet_audit
		  (bet_id, email, username, match_id, outcome, stake, state, payout, net_profit, balance_after, settled_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (bet_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, q,
		e.BetID, e.Email, e.Username, e.MatchID, e.Outcome,
		e.Stake, e.State, e.Payout, e.NetProfit, e.Balance, e.Ts,
	)
	return err
}
