package domain

import (
	"math"
	"strconv"
	"strings"
)

// DefaultRadius is the search radius used when nothing was persisted or the value doesn't parse
const DefaultRadius = 3.0

// preference keys as stored in the durable key/value storage
const (
	PrefGoal               = "goal"
	PrefRadius             = "radius"
	PrefMinProtein         = "min_protein"
	PrefMaxProtein         = "max_protein"
	PrefExcludeIngredients = "exclude_ingredients"
)

// PreferenceKeys lists all keys accepted for persistence
var PreferenceKeys = []string{PrefGoal, PrefRadius, PrefMinProtein, PrefMaxProtein, PrefExcludeIngredients}

// IsPreferenceKey reports whether the key is one of the persisted preference fields
func IsPreferenceKey(key string) bool {
	for _, k := range PreferenceKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Preferences keeps the user's filter inputs as raw text, exactly as entered.
// Numeric fields are parsed only when a search request is built.
type Preferences struct {
	Goal               string
	Radius             string
	MinProtein         string
	MaxProtein         string
	ExcludeIngredients string
}

// DefaultPreferences returns preferences for a client with nothing persisted
func DefaultPreferences() Preferences {
	return Preferences{Goal: DefaultGoalKey(), Radius: strconv.FormatFloat(DefaultRadius, 'f', -1, 64)}
}

// PreferencesFromMap builds preferences from stored key/value pairs, applying defaults
// for missing entries and for an unknown goal key
func PreferencesFromMap(values map[string]string) Preferences {
	p := DefaultPreferences()
	if v, ok := values[PrefGoal]; ok {
		if _, known := GoalByKey(v); known {
			p.Goal = v
		}
	}
	if v, ok := values[PrefRadius]; ok && v != "" {
		p.Radius = v
	}
	p.MinProtein = values[PrefMinProtein]
	p.MaxProtein = values[PrefMaxProtein]
	p.ExcludeIngredients = values[PrefExcludeIngredients]
	return p
}

// Value returns the raw value of a preference field by key
func (p Preferences) Value(key string) string {
	switch key {
	case PrefGoal:
		return p.Goal
	case PrefRadius:
		return p.Radius
	case PrefMinProtein:
		return p.MinProtein
	case PrefMaxProtein:
		return p.MaxProtein
	case PrefExcludeIngredients:
		return p.ExcludeIngredients
	}
	return ""
}

// RadiusValue parses the radius, falling back to DefaultRadius
func (p Preferences) RadiusValue() float64 {
	if v, ok := parseNumber(p.Radius); ok {
		return v
	}
	return DefaultRadius
}

// MacroOverrides returns protein bounds for the inputs that parse as numbers, empty inputs are omitted
func (p Preferences) MacroOverrides() MacroOverrides {
	var res MacroOverrides
	if v, ok := parseNumber(p.MinProtein); ok {
		res.MinProtein = &v
	}
	if v, ok := parseNumber(p.MaxProtein); ok {
		res.MaxProtein = &v
	}
	return res
}

// ExcludedIngredients splits the exclusion text on commas, trims each term and drops empty ones
func (p Preferences) ExcludedIngredients() []string {
	res := []string{}
	for _, term := range strings.Split(p.ExcludeIngredients, ",") {
		if term = strings.TrimSpace(term); term != "" {
			res = append(res, term)
		}
	}
	return res
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
