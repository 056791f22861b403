package ranking

import "github.com/radieske/edgeplay-ledger/internal/core/model"

// RankUsersByProfit ordena os usuários por lucro em ordem decrescente.
//
// Partição recursiva com o primeiro elemento como pivô. Empates com o pivô vão
// para a esquerda (>=), então a ordem entre lucros iguais depende de quem foi pivô.
// A entrada não é alterada.
func RankUsersByProfit(users []model.User) []model.User {
	if len(users) <= 1 {
		return users
	}

	pivot := users[0]
	pivotProfit := pivot.Profit()

	var left, right []model.User
	for _, u := range users[1:] {
		if u.Profit() >= pivotProfit {
			left = append(left, u)
		} else {
			right = append(right, u)
		}
	}

	out := make([]model.User, 0, len(users))
	out = append(out, RankUsersByProfit(left)...)
	out = append(out, pivot)
	out = append(out, RankUsersByProfit(right)...)
	return out
}
