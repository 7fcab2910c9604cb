package game

import "github.com/lox/landlord/internal/combo"

func containsAction(actions []combo.Combination, a combo.Combination) bool {
	for _, candidate := range actions {
		if candidate.Equal(a) {
			return true
		}
	}
	return false
}
