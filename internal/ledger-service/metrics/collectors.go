package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/radieske/edgeplay-ledger/internal/core/ledger"
	"github.com/radieske/edgeplay-ledger/pkg/contracts/events"
)

// Collectors agrupa as métricas Prometheus do ledger-service
type Collectors struct {
	Logins          *prometheus.CounterVec
	AccountsCreated prometheus.Counter
	BetsSettled     *prometheus.CounterVec
	StakeTotal      prometheus.Counter
	PayoutTotal     prometheus.Counter
	Rejections      *prometheus.CounterVec
	PublishErrors   *prometheus.CounterVec
}

func NewCollectors() *Collectors {
	return &Collectors{
		Logins:          prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ledger_logins_total", Help: "tentativas de login por resultado"}, []string{"result"}),
		AccountsCreated: prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_accounts_created_total", Help: "contas criadas"}),
		BetsSettled:     prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ledger_bets_settled_total", Help: "apostas liquidadas por estado"}, []string{"state"}),
		StakeTotal:      prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_stake_total", Help: "soma das stakes apostadas"}),
		PayoutTotal:     prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_payout_total", Help: "soma dos payouts pagos"}),
		Rejections:      prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ledger_rejections_total", Help: "operações rejeitadas por operação e motivo"}, []string{"op", "reason"}),
		PublishErrors:   prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ledger_publish_errors_total", Help: "falhas ao publicar eventos"}, []string{"sink"}),
	}
}

// MustRegister registra tudo no registrador informado
func (c *Collectors) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(c.Logins, c.AccountsCreated, c.BetsSettled, c.StakeTotal, c.PayoutTotal, c.Rejections, c.PublishErrors)
}

func (c *Collectors) ObserveLogin(ok bool) {
	if ok {
		c.Logins.WithLabelValues("ok").Inc()
		return
	}
	c.Logins.WithLabelValues("rejected").Inc()
}

func (c *Collectors) ObserveAccount(events.AccountCreated) { c.AccountsCreated.Inc() }

func (c *Collectors) ObserveBet(e events.BetSettled) {
	c.BetsSettled.WithLabelValues(e.State).Inc()
	c.StakeTotal.Add(e.Stake)
	c.PayoutTotal.Add(e.Payout)
}

func (c *Collectors) ObserveRejection(op string, err error) {
	c.Rejections.WithLabelValues(op, Reason(err)).Inc()
}

// Reason converte a sentinela num rótulo de baixa cardinalidade
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "other"
}

var reasons = []struct {
	err   error
	label string
}{
	{ledger.ErrInvalidCredentials, "invalid_credentials"},
	{ledger.ErrAccountExists, "account_exists"},
	{ledger.ErrInvalidUsername, "invalid_username"},
	{ledger.ErrWeakPassword, "weak_password"},
	{ledger.ErrNotAuthenticated, "not_authenticated"},
	{ledger.ErrMatchNotFound, "match_not_found"},
	{ledger.ErrInvalidOutcome, "invalid_outcome"},
	{ledger.ErrInvalidStake, "invalid_stake"},
	{ledger.ErrInsufficientBalance, "insufficient_balance"},
}
