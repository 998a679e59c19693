package domain

// Goal is a named dietary objective the user picks to bias search results
type Goal struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	CaloriesMin int    `json:"calories_min"`
	CaloriesMax int    `json:"calories_max"`
}

// goals is the fixed catalog, the first entry is the default selection
var goals = []Goal{
	{Key: "muscle_gain", Label: "Muscle Gain", Description: "High protein, 2500–3500 cal", Icon: "💪", CaloriesMin: 2500, CaloriesMax: 3500},
	{Key: "weight_loss", Label: "Weight Loss", Description: "1500–2000 cal, low carbs", Icon: "🏃", CaloriesMin: 1500, CaloriesMax: 2000},
	{Key: "keto", Label: "Keto", Description: "5–10% carbs, 70–80% fat", Icon: "🥑", CaloriesMin: 1800, CaloriesMax: 2200},
	{Key: "balanced", Label: "Balanced", Description: "2000–2500 cal, 30/40/30", Icon: "⚖️", CaloriesMin: 2000, CaloriesMax: 2500},
	{Key: "athletic_endurance", Label: "Endurance", Description: "3000–4000 cal, high carbs", Icon: "🚴", CaloriesMin: 3000, CaloriesMax: 4000},
	{Key: "vegan_protein", Label: "Vegan Protein", Description: "2000–2400 cal, plant protein", Icon: "🌱", CaloriesMin: 2000, CaloriesMax: 2400},
}

// Goals returns a copy of the goal catalog in display order
func Goals() []Goal {
	res := make([]Goal, len(goals))
	copy(res, goals)
	return res
}

// DefaultGoalKey returns the key selected when nothing was persisted
func DefaultGoalKey() string {
	return goals[0].Key
}

// GoalByKey looks up a catalog entry
func GoalByKey(key string) (Goal, bool) {
	for _, g := range goals {
		if g.Key == key {
			return g, true
		}
	}
	return Goal{}, false
}

// GoalCard is a catalog entry with its selection state, used for rendering
type GoalCard struct {
	Goal
	Selected bool
}

// GoalCards returns the catalog with exactly one card marked selected.
// Unknown keys select the default goal.
func GoalCards(selected string) []GoalCard {
	if _, ok := GoalByKey(selected); !ok {
		selected = DefaultGoalKey()
	}
	res := make([]GoalCard, 0, len(goals))
	for _, g := range goals {
		res = append(res, GoalCard{Goal: g, Selected: g.Key == selected})
	}
	return res
}
