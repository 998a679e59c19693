package domain

// MacroOverrides narrows the server-side nutrition filter, absent bounds are omitted from the payload
type MacroOverrides struct {
	MinProtein *float64 `json:"min_protein,omitempty"`
	MaxProtein *float64 `json:"max_protein,omitempty"`
}

// SearchRequest is the payload posted to the meal search endpoint
type SearchRequest struct {
	Location           GeoPoint       `json:"location"`
	Goal               string         `json:"goal"`
	Radius             float64        `json:"radius"`
	OverrideMacros     MacroOverrides `json:"override_macros"`
	ExcludeIngredients []string       `json:"exclude_ingredients"`
}

// SearchResponse is the expected response shape. Meals is nil when the key is absent or null,
// an empty list is a valid answer.
type SearchResponse struct {
	Meals []Meal `json:"meals"`
}

// NewSearchRequest builds the payload from the resolved location and current preferences
func NewSearchRequest(loc Location, prefs Preferences) SearchRequest {
	goal := prefs.Goal
	if _, ok := GoalByKey(goal); !ok {
		goal = DefaultGoalKey()
	}
	return SearchRequest{
		Location:           loc.GeoPoint,
		Goal:               goal,
		Radius:             prefs.RadiusValue(),
		OverrideMacros:     prefs.MacroOverrides(),
		ExcludeIngredients: prefs.ExcludedIngredients(),
	}
}
