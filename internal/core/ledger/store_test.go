package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/edgeplay-ledger/internal/core/model"
	"github.com/radieske/edgeplay-ledger/internal/core/seed"
	"github.com/radieske/edgeplay-ledger/pkg/contracts/events"
)

var fixedNow = time.Date(2024, time.November, 3, 18, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	seq := 0
	return New(
		map[string]model.User{
			"ana@x.com": {Username: "ana", Email: "ana@x.com", Password: "secret", StartingBalance: 100, Balance: 100},
		},
		map[string]model.Match{
			"m1": {MatchID: "m1", HomeTeam: "Real Madrid", AwayTeam: "Barcelona", Odds: model.Odds{Home: 2.5, Draw: 3.2, Away: 2.8}, Result: model.OutcomeHome},
			"m2": {MatchID: "m2", HomeTeam: "Girona", AwayTeam: "Getafe", Odds: model.Odds{Home: 1.9, Draw: 3.0, Away: 4.1}, Result: model.OutcomeUndecided},
		},
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("bet-%d", seq)
		}),
	)
}

func TestLogin(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.Login("ana@x.com", "SECRET"), "password compare is case sensitive")
	assert.False(t, s.Login("nobody@x.com", "secret"))
	_, authenticated := s.CurrentUser()
	assert.False(t, authenticated)

	assert.True(t, s.Login("ANA@X.com", "secret"), "email is normalized")
	u, authenticated := s.CurrentUser()
	require.True(t, authenticated)
	assert.Equal(t, "ana", u.Username)

	s.Logout()
	_, authenticated = s.CurrentUser()
	assert.False(t, authenticated)
}

func TestLogin_FiresHooks(t *testing.T) {
	s := newTestStore(t)
	var logins []bool
	var rejected []error
	s.OnLogin = func(ok bool) { logins = append(logins, ok) }
	s.OnRejected = func(op string, err error) {
		assert.Equal(t, "login", op)
		rejected = append(rejected, err)
	}

	s.Login("ana@x.com", "bad")
	s.Login("ana@x.com", "secret")

	assert.Equal(t, []bool{false, true}, logins)
	require.Len(t, rejected, 1)
	assert.ErrorIs(t, rejected[0], ErrInvalidCredentials)
}

func TestCreateAccount(t *testing.T) {
	cases := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
		wantMsg  string
	}{
		{"existing email any case", "other", "ANA@x.com", "pw123", ErrAccountExists, "Account with this email already exists"},
		{"short username after trim", "  j  ", "j@x.com", "pw123", ErrInvalidUsername, "Username must be at least 2 characters"},
		{"weak password", "joao", "joao@x.com", "pw", ErrWeakPassword, "Password must be at least 3 characters"},
		{"ok", "  joao ", "Joao@X.com", "pw1", nil, "Account created successfully!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			res := s.CreateAccount(tc.username, tc.email, tc.password)

			assert.Equal(t, tc.wantMsg, res.Message)
			if tc.wantErr != nil {
				assert.False(t, res.Success)
				assert.ErrorIs(t, res.Err, tc.wantErr)
				_, authenticated := s.CurrentUser()
				assert.False(t, authenticated)
				return
			}

			assert.True(t, res.Success)
			assert.NoError(t, res.Err)
			u, authenticated := s.CurrentUser()
			require.True(t, authenticated)
			assert.Equal(t, "joao", u.Username)
			assert.Equal(t, "joao@x.com", u.Email)
			assert.Equal(t, seed.StartingBalance, u.StartingBalance)
			assert.Equal(t, seed.StartingBalance, u.Balance)
			assert.Empty(t, u.Bets)
		})
	}
}

func TestCreateAccount_DuplicateKeepsFirst(t *testing.T) {
	s := New(nil, nil)

	first := s.CreateAccount("alice", "A@X.com", "pw1")
	require.True(t, first.Success)

	second := s.CreateAccount("bob", "a@x.com", "pw2")
	assert.False(t, second.Success)
	assert.ErrorIs(t, second.Err, ErrAccountExists)

	users := s.AllUsers()
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	assert.True(t, s.Login("a@x.com", "pw1"))
	assert.False(t, s.Login("a@x.com", "pw2"))
}

func TestCreateAccount_PublishesEvent(t *testing.T) {
	s := newTestStore(t)
	var got []events.AccountCreated
	s.OnAccountCreated = func(e events.AccountCreated) { got = append(got, e) }

	s.CreateAccount("joao", "joao@x.com", "pw1")
	s.CreateAccount("joao", "joao@x.com", "pw1")

	require.Len(t, got, 1)
	assert.Equal(t, events.AccountCreated{Email: "joao@x.com", Username: "joao", StartingBalance: 100, Ts: fixedNow}, got[0])
}

func TestPlaceBet_Validation(t *testing.T) {
	cases := []struct {
		name    string
		login   bool
		matchID string
		outcome model.Outcome
		stake   float64
		wantErr error
		wantMsg string
	}{
		{"not logged in", false, "m1", model.OutcomeHome, 10, ErrNotAuthenticated, "Not logged in"},
		{"unknown match", true, "nope", model.OutcomeHome, 10, ErrMatchNotFound, "Match not found"},
		{"bad outcome", true, "m1", model.Outcome("X"), 10, ErrInvalidOutcome, "Outcome must be H, D or A"},
		{"zero stake", true, "m1", model.OutcomeHome, 0, ErrInvalidStake, "Stake must be positive"},
		{"negative stake", true, "m1", model.OutcomeHome, -5, ErrInvalidStake, "Stake must be positive"},
		{"over balance", true, "m1", model.OutcomeHome, 150, ErrInsufficientBalance, "Insufficient balance"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			if tc.login {
				require.True(t, s.Login("ana@x.com", "secret"))
			}

			res := s.PlaceBet(tc.matchID, tc.outcome, tc.stake)

			assert.False(t, res.Success)
			assert.True(t, errors.Is(res.Err, tc.wantErr))
			assert.Equal(t, tc.wantMsg, res.Message)

			u := s.AllUsers()[0]
			assert.Equal(t, 100.0, u.Balance)
			assert.Empty(t, u.Bets)
		})
	}
}

func TestPlaceBet_WinAndLose(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.Login("ana@x.com", "secret"))

	var settled []events.BetSettled
	s.OnBetSettled = func(e events.BetSettled) { settled = append(settled, e) }

	res := s.PlaceBet("m1", model.OutcomeHome, 10)
	require.True(t, res.Success)
	assert.Equal(t, "You WON! Payout: €25.00. Net profit: €15.00", res.Message)

	res = s.PlaceBet("m1", model.OutcomeAway, 20)
	require.True(t, res.Success)
	assert.Equal(t, "You LOST. You lost your stake of €20.00", res.Message)

	u, authenticated := s.CurrentUser()
	require.True(t, authenticated)
	assert.InDelta(t, 95.0, u.Balance, 1e-9)
	assert.InDelta(t, -5.0, s.UserProfit(u), 1e-9)
	assert.Equal(t, 100.0, u.StartingBalance)

	require.Len(t, u.Bets, 2)
	assert.Equal(t, "bet-1", u.Bets[0].BetID)
	assert.Equal(t, model.BetWon, u.Bets[0].State)
	assert.InDelta(t, 25.0, u.Bets[0].Payout, 1e-9)
	assert.Equal(t, "bet-2", u.Bets[1].BetID)
	assert.Equal(t, model.BetLost, u.Bets[1].State)
	assert.Equal(t, 0.0, u.Bets[1].Payout)
	assert.Equal(t, fixedNow, u.Bets[1].PlacedAt)

	require.Len(t, settled, 2)
	assert.InDelta(t, 15.0, settled[0].NetProfit, 1e-9)
	assert.InDelta(t, 115.0, settled[0].Balance, 1e-9)
	assert.Equal(t, "LOST", settled[1].State)
	assert.InDelta(t, 95.0, settled[1].Balance, 1e-9)
}

func TestPlaceBet_UndecidedMatchKeepsStake(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.Login("ana@x.com", "secret"))

	res := s.PlaceBet("m2", model.OutcomeDraw, 30)

	require.True(t, res.Success)
	assert.Equal(t, "Bet placed. Awaiting result for Girona vs Getafe", res.Message)
	u, _ := s.CurrentUser()
	assert.InDelta(t, 70.0, u.Balance, 1e-9)
	require.Len(t, u.Bets, 1)
	assert.Equal(t, model.BetPending, u.Bets[0].State)
	assert.Equal(t, 0.0, u.Bets[0].Payout)
}

func TestPlaceBet_WholeBalance(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.Login("ana@x.com", "secret"))

	res := s.PlaceBet("m1", model.OutcomeDraw, 100)
	require.True(t, res.Success)

	u, _ := s.CurrentUser()
	assert.Equal(t, 0.0, u.Balance)

	res = s.PlaceBet("m1", model.OutcomeHome, 1)
	assert.ErrorIs(t, res.Err, ErrInsufficientBalance)
}

func TestPlaceBet_OldRecordUntouched(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.Login("ana@x.com", "secret"))
	require.True(t, s.PlaceBet("m1", model.OutcomeHome, 10).Success)

	before, _ := s.CurrentUser()
	require.True(t, s.PlaceBet("m1", model.OutcomeAway, 10).Success)

	assert.Len(t, before.Bets, 1, "a snapshot taken before the update must not change")
	assert.InDelta(t, 115.0, before.Balance, 1e-9)
}

func TestSortedUsersAndRank(t *testing.T) {
	s := New(seed.CreateInitialUsers(), seed.CreateInitialMatches())

	sorted := s.SortedUsers()
	require.Len(t, sorted, 4)
	got := make([]string, 0, len(sorted))
	for _, u := range sorted {
		got = append(got, u.Username)
	}
	assert.Equal(t, []string{"Carla", "Alice", "Demo", "Bob"}, got)

	assert.Equal(t, 1, s.UserRank("Carla"))
	assert.Equal(t, 4, s.UserRank("Bob"))
	assert.Equal(t, 0, s.UserRank("ghost"))
}

func TestMatches(t *testing.T) {
	s := newTestStore(t)

	all := s.AllMatches()
	require.Len(t, all, 2)
	assert.Equal(t, "m1", all[0].MatchID)
	assert.Equal(t, "m2", all[1].MatchID)

	m, found := s.Match("m2")
	require.True(t, found)
	assert.Equal(t, "Girona", m.HomeTeam)

	_, found = s.Match("zzz")
	assert.False(t, found)
}

func TestStandings(t *testing.T) {
	s := newTestStore(t)
	table := s.Standings(seed.CreateTeamStats())
	require.NotEmpty(t, table)
	assert.Equal(t, "Real Madrid", table[0].Team)
	assert.Equal(t, 25, table[0].Points())
}

func TestPlaceBet_ResultCarriesSettledBet(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.Login("ana@x.com", "secret"))

	res := s.PlaceBet("m1", model.OutcomeHome, 10)

	require.True(t, res.Success)
	require.NotNil(t, res.Bet)
	assert.Equal(t, "bet-1", res.Bet.BetID)
	assert.Equal(t, model.BetWon, res.Bet.State)
	assert.InDelta(t, 25.0, res.Bet.Payout, 1e-9)
	assert.InDelta(t, 115.0, res.Balance, 1e-9)

	// sessão trocada depois do lock não altera o resultado já devolvido
	s.Logout()
	assert.Equal(t, "bet-1", res.Bet.BetID)

	rejected := s.PlaceBet("m1", model.OutcomeHome, 10)
	assert.Nil(t, rejected.Bet)
	assert.Zero(t, rejected.Balance)
}

func TestUsers_InsertionOrder(t *testing.T) {
	s := New(nil, nil)
	require.True(t, s.CreateAccount("zed", "zed@x.com", "pw1").Success)
	require.True(t, s.CreateAccount("amy", "amy@x.com", "pw1").Success)

	names := func(users []model.User) []string {
		out := make([]string, 0, len(users))
		for _, u := range users {
			out = append(out, u.Username)
		}
		return out
	}

	assert.Equal(t, []string{"zed", "amy"}, names(s.AllUsers()))
	// empate em lucro zero: o primeiro inserido é pivô e o seguinte vai à esquerda
	assert.Equal(t, []string{"amy", "zed"}, names(s.SortedUsers()))
}

func TestNew_WithUserOrder(t *testing.T) {
	users := map[string]model.User{
		"b@x.com": {Username: "b", Email: "b@x.com", StartingBalance: 100, Balance: 100},
		"a@x.com": {Username: "a", Email: "a@x.com", StartingBalance: 100, Balance: 100},
		"c@x.com": {Username: "c", Email: "c@x.com", StartingBalance: 100, Balance: 100},
	}

	s := New(users, nil, WithUserOrder("C@x.com", "ghost@x.com", "c@x.com"))

	got := make([]string, 0, 3)
	for _, u := range s.AllUsers() {
		got = append(got, u.Username)
	}
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestSortedUsers_SeedOrder(t *testing.T) {
	s := New(seed.CreateInitialUsers(), seed.CreateInitialMatches(), WithUserOrder(seed.InitialUserOrder()...))

	got := make([]string, 0, 4)
	for _, u := range s.AllUsers() {
		got = append(got, u.Username)
	}
	assert.Equal(t, []string{"Demo", "Alice", "Bob", "Carla"}, got)

	ranked := s.SortedUsers()
	require.Len(t, ranked, 4)
	assert.Equal(t, "Carla", ranked[0].Username)
	assert.Equal(t, "Bob", ranked[3].Username)
}
