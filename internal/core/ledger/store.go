package ledger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/edgeplay-ledger/internal/core/model"
	"github.com/radieske/edgeplay-ledger/internal/core/ranking"
	"github.com/radieske/edgeplay-ledger/internal/core/settlement"
	"github.com/radieske/edgeplay-ledger/internal/core/seed"
	"github.com/radieske/edgeplay-ledger/pkg/contracts/events"
)

const (
	minUsernameLen = 2
	minPasswordLen = 3
)

// session representa o usuário autenticado. active=false é o estado deslogado.
type session struct {
	email  string
	active bool
}

// Store é o único dono do estado compartilhado: usuários, partidas e sessão atual.
// Cada operação roda inteira sob o mutex, reproduzindo a execução serializada
// de um único despachante de eventos.
type Store struct {
	mu      sync.Mutex
	users   map[string]model.User  // e-mail normalizado -> usuário
	order   []string               // e-mails em ordem de inserção
	matches map[string]model.Match // matchID -> partida, imutável
	current session

	log   *zap.Logger
	now   func() time.Time
	newID func() string

	// Callbacks opcionais (métricas, eventos). Executados fora do lock.
	OnAccountCreated func(events.AccountCreated)
	OnBetSettled     func(events.BetSettled)
	OnLogin          func(ok bool)
	OnRejected       func(op string, err error)
}

// Option configura o Store na construção
type Option func(*Store)

// WithLogger define o logger estruturado
func WithLogger(l *zap.Logger) Option { return func(s *Store) { s.log = l } }

// WithClock troca o relógio usado em PlacedAt e nos eventos
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithIDGenerator troca o gerador de BetID
func WithIDGenerator(gen func() string) Option { return func(s *Store) { s.newID = gen } }

// WithUserOrder fixa a ordem de inserção dos usuários semeados. E-mails
// desconhecidos são ignorados; os semeados que faltarem vão ao fim, por e-mail.
func WithUserOrder(emails ...string) Option {
	return func(s *Store) { s.order = emails }
}

// New cria o store a partir dos dados semeados. Os mapas são copiados.
func New(users map[string]model.User, matches map[string]model.Match, opts ...Option) *Store {
	s := &Store{
		users:   make(map[string]model.User, len(users)),
		matches: make(map[string]model.Match, len(matches)),
		log:     zap.NewNop(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for k, u := range users {
		s.users[normalizeEmail(k)] = u
	}
	for k, m := range matches {
		s.matches[k] = m
	}
	for _, opt := range opts {
		opt(s)
	}
	s.order = seedOrder(s.users, s.order)
	return s
}

// seedOrder normaliza a ordem pedida e completa com os e-mails restantes
func seedOrder(users map[string]model.User, requested []string) []string {
	out := make([]string, 0, len(users))
	seen := make(map[string]bool, len(users))
	for _, e := range requested {
		k := normalizeEmail(e)
		if _, found := users[k]; found && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}

	var rest []string
	for k := range users {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func normalizeEmail(email string) string { return strings.ToLower(email) }

// Login autentica comparando a senha em texto puro. Não distingue e-mail
// desconhecido de senha errada.
func (s *Store) Login(email, password string) bool {
	key := normalizeEmail(email)

	s.mu.Lock()
	u, found := s.users[key]
	authenticated := found && u.Password == password
	if authenticated {
		s.current = session{email: key, active: true}
	}
	s.mu.Unlock()

	if authenticated {
		s.log.Debug("login ok", zap.String("email", key))
	} else {
		s.log.Info("login rejected", zap.String("email", key))
		s.rejected("login", ErrInvalidCredentials)
	}
	if s.OnLogin != nil {
		s.OnLogin(authenticated)
	}
	return authenticated
}

// Logout limpa a sessão atual
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = session{}
	s.mu.Unlock()
}

// CreateAccount cria a conta com saldo inicial fixo e autentica o novo usuário
func (s *Store) CreateAccount(username, email, password string) Result {
	key := normalizeEmail(email)
	name := strings.TrimSpace(username)

	s.mu.Lock()
	var res Result
	switch {
	case s.exists(key):
		res = fail(ErrAccountExists, "Account with this email already exists")
	case len([]rune(name)) < minUsernameLen:
		res = fail(ErrInvalidUsername, "Username must be at least 2 characters")
	case len([]rune(password)) < minPasswordLen:
		res = fail(ErrWeakPassword, "Password must be at least 3 characters")
	default:
		s.users[key] = model.User{
			Username:        name,
			Email:           key,
			Password:        password,
			StartingBalance: seed.StartingBalance,
			Balance:         seed.StartingBalance,
			Bets:            []model.Bet{},
		}
		s.order = append(s.order, key)
		s.current = session{email: key, active: true}
		res = ok("Account created successfully!")
	}
	s.mu.Unlock()

	if !res.Success {
		s.log.Info("account rejected", zap.String("email", key), zap.Error(res.Err))
		s.rejected("create_account", res.Err)
		return res
	}

	s.log.Debug("account created", zap.String("email", key), zap.String("username", name))
	if s.OnAccountCreated != nil {
		s.OnAccountCreated(events.AccountCreated{
			Email:           key,
			Username:        name,
			StartingBalance: seed.StartingBalance,
			Ts:              s.now(),
		})
	}
	return res
}

func (s *Store) exists(key string) bool {
	_, found := s.users[key]
	return found
}

// PlaceBet valida, liquida a aposta na hora e grava o novo registro do usuário
func (s *Store) PlaceBet(matchID string, outcome model.Outcome, stake float64) Result {
	s.mu.Lock()
	res, ev := s.placeBetLocked(matchID, outcome, stake)
	s.mu.Unlock()

	if !res.Success {
		s.log.Info("bet rejected",
			zap.String("match_id", matchID),
			zap.String("outcome", string(outcome)),
			zap.Float64("stake", stake),
			zap.Error(res.Err),
		)
		s.rejected("place_bet", res.Err)
		return res
	}

	s.log.Debug("bet settled",
		zap.String("bet_id", ev.BetID),
		zap.String("email", ev.Email),
		zap.String("state", ev.State),
		zap.Float64("payout", ev.Payout),
	)
	if s.OnBetSettled != nil {
		s.OnBetSettled(ev)
	}
	return res
}

func (s *Store) placeBetLocked(matchID string, outcome model.Outcome, stake float64) (Result, events.BetSettled) {
	if !s.current.active {
		return fail(ErrNotAuthenticated, "Not logged in"), events.BetSettled{}
	}
	key := s.current.email
	u := s.users[key]

	match, found := s.matches[matchID]
	if !found {
		return fail(ErrMatchNotFound, "Match not found"), events.BetSettled{}
	}
	if !outcome.Valid() {
		return fail(ErrInvalidOutcome, "Outcome must be H, D or A"), events.BetSettled{}
	}
	if !(stake > 0) {
		return fail(ErrInvalidStake, "Stake must be positive"), events.BetSettled{}
	}
	if stake > u.Balance {
		return fail(ErrInsufficientBalance, "Insufficient balance"), events.BetSettled{}
	}

	bet := model.Bet{
		BetID:    s.newID(),
		MatchID:  match.MatchID,
		Outcome:  outcome,
		Stake:    stake,
		State:    model.BetPending,
		Payout:   0,
		PlacedAt: s.now(),
	}
	net := settlement.Settle(&bet, match)

	updated := u.WithSettledBet(bet, u.Balance-stake+bet.Payout)
	s.users[key] = updated
	s.current = session{email: key, active: true}

	ev := events.BetSettled{
		BetID:     bet.BetID,
		Email:     key,
		Username:  updated.Username,
		MatchID:   bet.MatchID,
		Outcome:   string(bet.Outcome),
		Stake:     bet.Stake,
		State:     string(bet.State),
		Payout:    bet.Payout,
		NetProfit: net,
		Balance:   updated.Balance,
		Ts:        bet.PlacedAt,
	}

	var res Result
	switch bet.State {
	case model.BetWon:
		res = ok(fmt.Sprintf("You WON! Payout: €%.2f. Net profit: €%.2f", bet.Payout, net))
	case model.BetLost:
		res = ok(fmt.Sprintf("You LOST. You lost your stake of €%.2f", stake))
	default:
		s.log.Debug("settlement deferred", zap.String("match_id", match.MatchID), zap.Error(ErrUnresolvedMatch))
		res = ok(fmt.Sprintf("Bet placed. Awaiting result for %s vs %s", match.HomeTeam, match.AwayTeam))
	}
	res.Bet = &bet
	res.Balance = updated.Balance
	return res, ev
}

func (s *Store) rejected(op string, err error) {
	if s.OnRejected != nil {
		s.OnRejected(op, err)
	}
}

// CurrentUser retorna o usuário autenticado, se houver
func (s *Store) CurrentUser() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current.active {
		return model.User{}, false
	}
	u, found := s.users[s.current.email]
	return u, found
}

// AllUsers retorna os usuários em ordem de inserção: semeados e depois as
// contas na ordem de criação
func (s *Store) AllUsers() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usersLocked()
}

// usersLocked lista os usuários em ordem de inserção; é a entrada do ranking,
// então define a ordem entre lucros empatados.
func (s *Store) usersLocked() []model.User {
	out := make([]model.User, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.users[k])
	}
	return out
}

// SortedUsers é o leaderboard por lucro
func (s *Store) SortedUsers() []model.User {
	s.mu.Lock()
	users := s.usersLocked()
	s.mu.Unlock()
	return ranking.RankUsersByProfit(users)
}

// UserRank retorna a posição (1-based) do usuário no leaderboard, 0 se ausente
func (s *Store) UserRank(username string) int {
	for i, u := range s.SortedUsers() {
		if u.Username == username {
			return i + 1
		}
	}
	return 0
}

// AllMatches retorna as partidas ordenadas por MatchID
func (s *Store) AllMatches() []model.Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out
}

// Match busca uma partida pelo id
func (s *Store) Match(matchID string) (model.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, found := s.matches[matchID]
	return m, found
}

// UserProfit é saldo atual menos saldo inicial
func (s *Store) UserProfit(u model.User) float64 { return u.Profit() }

// Standings delega a classificação ao ranking por pontos
func (s *Store) Standings(stats map[string]model.TeamStats) []ranking.TeamStanding {
	return ranking.RankTeamsByPoints(stats)
}
