package ledger

import (
	"errors"

	"github.com/radieske/edgeplay-ledger/internal/core/model"
)

// Falhas de validação. Nunca atravessam a fronteira do store como pânico: são
// devolvidas dentro de Result (ou como false no Login).
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountExists       = errors.New("account already exists")
	ErrInvalidUsername     = errors.New("invalid username")
	ErrWeakPassword        = errors.New("weak password")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrMatchNotFound       = errors.New("match not found")
	ErrInvalidOutcome      = errors.New("invalid outcome")
	ErrInvalidStake        = errors.New("invalid stake")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrUnresolvedMatch não é exibido ao usuário: a aposta fica PENDING
	ErrUnresolvedMatch = errors.New("match result not fixed yet")
)

// Result é o retorno estruturado das operações que alteram o store
type Result struct {
	Success bool
	Message string
	Err     error // sentinela acima; nil em caso de sucesso

	// Preenchidos só pelo PlaceBet aceito, ainda sob o lock
	Bet     *model.Bet
	Balance float64
}

func ok(msg string) Result { return Result{Success: true, Message: msg} }

func fail(err error, msg string) Result { return Result{Message: msg, Err: err} }
