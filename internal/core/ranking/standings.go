package ranking

import "github.com/radieske/edgeplay-ledger/internal/core/model"

// TeamStanding é uma linha da classificação
type TeamStanding struct {
	Team  string
	Stats model.TeamStats
}

// Points atalho para Stats.Points()
func (t TeamStanding) Points() int { return t.Stats.Points() }

// RankTeamsByPoints ordena por pontos decrescentes e, no empate, pelo nome do time
// em ordem lexicográfica crescente. Selection sort in-place sobre a lista de times.
func RankTeamsByPoints(statsByTeam map[string]model.TeamStats) []TeamStanding {
	items := make([]TeamStanding, 0, len(statsByTeam))
	for team, st := range statsByTeam {
		items = append(items, TeamStanding{Team: team, Stats: st})
	}

	n := len(items)
	for i := 0; i < n; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			pj, pb := items[j].Points(), items[best].Points()
			if pj > pb || (pj == pb && items[j].Team < items[best].Team) {
				best = j
			}
		}
		items[i], items[best] = items[best], items[i]
	}

	return items
}
