package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoalCards(t *testing.T) {
	for _, g := range Goals() {
		t.Run(g.Key, func(t *testing.T) {
			cards := GoalCards(g.Key)
			assert.Len(t, cards, len(Goals()))
			selected := []string{}
			for _, c := range cards {
				if c.Selected {
					selected = append(selected, c.Key)
				}
			}
			assert.Equal(t, []string{g.Key}, selected)
		})
	}

	t.Run("unknown key selects default", func(t *testing.T) {
		cards := GoalCards("nope")
		assert.True(t, cards[0].Selected)
		assert.Equal(t, DefaultGoalKey(), cards[0].Key)
	})
}

func TestGoalByKey(t *testing.T) {
	g, ok := GoalByKey("keto")
	assert.True(t, ok)
	assert.Equal(t, "Keto", g.Label)

	_, ok = GoalByKey("")
	assert.False(t, ok)
}

func TestGoals_ReturnsCopy(t *testing.T) {
	gg := Goals()
	gg[0].Key = "changed"
	assert.Equal(t, "muscle_gain", DefaultGoalKey())
}
