package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/edgeplay-ledger/internal/core/ledger"
	"github.com/radieske/edgeplay-ledger/internal/core/model"
	"github.com/radieske/edgeplay-ledger/internal/core/ranking"
	"github.com/radieske/edgeplay-ledger/internal/ledger-service/cache"
	"github.com/radieske/edgeplay-ledger/internal/ledger-service/dto"
)

// Ledger define as operações do store usadas pelos handlers HTTP
type Ledger interface {
	Login(email, password string) bool
	Logout()
	CreateAccount(username, email, password string) ledger.Result
	PlaceBet(matchID string, outcome model.Outcome, stake float64) ledger.Result
	CurrentUser() (model.User, bool)
	SortedUsers() []model.User
	UserRank(username string) int
	AllMatches() []model.Match
	Match(matchID string) (model.Match, bool)
	Standings(stats map[string]model.TeamStats) []ranking.TeamStanding
}

// Snapshots lê o último leaderboard gravado no Redis
type Snapshots interface {
	Get(ctx context.Context) (cache.Snapshot, bool, error)
}

// Server expõe o store como API REST e, opcionalmente, o WebSocket do leaderboard
type Server struct {
	log   *zap.Logger
	store Ledger
	stats map[string]model.TeamStats // tabela estática de classificação
	ws    http.Handler               // nil desliga /ws
	board Snapshots                  // nil: leaderboard sempre calculado na hora
}

// NewServer instancia o servidor HTTP do ledger
func NewServer(log *zap.Logger, store Ledger, stats map[string]model.TeamStats, ws http.Handler) *Server {
	return &Server{log: log, store: store, stats: stats, ws: ws}
}

// WithSnapshots faz o GET /v1/leaderboard servir o snapshot do cache quando
// presente, recalculando no store em miss ou erro
func (s *Server) WithSnapshots(b Snapshots) *Server {
	s.board = b
	return s
}

// Router retorna o roteador HTTP com os endpoints REST
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/v1/session", s.login)          // autentica
	r.Delete("/v1/session", s.logout)       // encerra sessão
	r.Post("/v1/accounts", s.createAccount) // cria conta e autentica
	r.Get("/v1/me", s.me)                   // usuário atual
	r.Get("/v1/me/bets", s.history)         // histórico cronológico
	r.Post("/v1/bets", s.placeBet)          // aposta liquidada na hora
	r.Get("/v1/matches", s.listMatches)     // partidas
	r.Get("/v1/matches/{id}", s.getMatch)   // partida por id
	r.Get("/v1/leaderboard", s.leaderboard) // ranking por lucro
	r.Get("/v1/standings", s.standings)     // classificação por pontos
	if s.ws != nil {
		r.Get("/ws", s.ws.ServeHTTP)
	}
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorCode traduz as sentinelas do ledger em status HTTP e código estável
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, ledger.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, ledger.ErrNotAuthenticated):
		return http.StatusUnauthorized, "NOT_AUTHENTICATED"
	case errors.Is(err, ledger.ErrAccountExists):
		return http.StatusConflict, "ACCOUNT_EXISTS"
	case errors.Is(err, ledger.ErrInvalidUsername):
		return http.StatusBadRequest, "INVALID_USERNAME"
	case errors.Is(err, ledger.ErrWeakPassword):
		return http.StatusBadRequest, "WEAK_PASSWORD"
	case errors.Is(err, ledger.ErrMatchNotFound):
		return http.StatusNotFound, "MATCH_NOT_FOUND"
	case errors.Is(err, ledger.ErrInvalidOutcome):
		return http.StatusBadRequest, "INVALID_OUTCOME"
	case errors.Is(err, ledger.ErrInvalidStake):
		return http.StatusBadRequest, "INVALID_STAKE"
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"
	}
	return http.StatusInternalServerError, "INTERNAL"
}

func writeResult(w http.ResponseWriter, okStatus int, res ledger.Result) {
	if res.Success {
		writeJSON(w, okStatus, dto.ResultResponse{Success: true, Message: res.Message})
		return
	}
	status, code := errorCode(res.Err)
	writeJSON(w, status, dto.ResultResponse{Message: res.Message, Code: code})
}

func badJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, dto.ResultResponse{Message: "bad json", Code: "BAD_REQUEST"})
}

func notLoggedIn(w http.ResponseWriter) {
	status, code := errorCode(ledger.ErrNotAuthenticated)
	writeJSON(w, status, dto.ResultResponse{Message: "Not logged in", Code: code})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	if !s.store.Login(req.Email, req.Password) {
		status, code := errorCode(ledger.ErrInvalidCredentials)
		writeJSON(w, status, dto.ResultResponse{Message: "Invalid email or password", Code: code})
		return
	}
	s.me(w, r)
}

func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	s.store.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	writeResult(w, http.StatusCreated, s.store.CreateAccount(req.Username, req.Email, req.Password))
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request) {
	u, ok := s.store.CurrentUser()
	if !ok {
		notLoggedIn(w)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserResponse(u, s.store.UserRank(u.Username)))
}

func (s *Server) history(w http.ResponseWriter, _ *http.Request) {
	u, ok := s.store.CurrentUser()
	if !ok {
		notLoggedIn(w)
		return
	}
	out := make([]dto.BetResponse, 0, len(u.Bets))
	for _, b := range u.Bets {
		m, found := s.store.Match(b.MatchID)
		out = append(out, dto.NewBetResponse(b, m, found))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}

	res := s.store.PlaceBet(req.MatchID, model.Outcome(req.Outcome), req.Stake)
	if !res.Success {
		writeResult(w, http.StatusOK, res)
		return
	}

	// aposta e saldo vêm do Result, gravados sob o mesmo lock da liquidação
	out := dto.PlaceBetResponse{
		ResultResponse: dto.ResultResponse{Success: true, Message: res.Message},
		Balance:        res.Balance,
	}
	if res.Bet != nil {
		m, found := s.store.Match(res.Bet.MatchID)
		bet := dto.NewBetResponse(*res.Bet, m, found)
		out.Bet = &bet
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listMatches(w http.ResponseWriter, _ *http.Request) {
	all := s.store.AllMatches()
	out := make([]dto.MatchResponse, 0, len(all))
	for _, m := range all {
		out = append(out, dto.NewMatchResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	m, ok := s.store.Match(chi.URLParam(r, "id"))
	if !ok {
		status, code := errorCode(ledger.ErrMatchNotFound)
		writeJSON(w, status, dto.ResultResponse{Message: "Match not found", Code: code})
		return
	}
	writeJSON(w, http.StatusOK, dto.NewMatchResponse(m))
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	if s.board != nil {
		snap, hit, err := s.board.Get(r.Context())
		if err != nil {
			s.log.Warn("leaderboard snapshot", zap.Error(err))
		}
		if hit && err == nil {
			writeJSON(w, http.StatusOK, snap.Entries)
			return
		}
	}
	writeJSON(w, http.StatusOK, dto.NewLeaderboard(s.store.SortedUsers()))
}

func (s *Server) standings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewStandings(s.store.Standings(s.stats)))
}
