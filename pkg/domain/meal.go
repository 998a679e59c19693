package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// confidence labels used by the search endpoint
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Meal is a single search result, fields are optional except the name
type Meal struct {
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	Price           Price       `json:"price,omitempty"`
	Tags            []string    `json:"tags,omitempty"`
	RelevanceScore  *float64    `json:"relevance_score,omitempty"`
	ConfidenceLevel string      `json:"confidence_level,omitempty"`
	Nutrition       *Nutrition  `json:"nutrition,omitempty"`
	Restaurant      *Restaurant `json:"restaurant,omitempty"`
}

// Nutrition holds per-meal macros, nil means unknown
type Nutrition struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
}

// Restaurant is the optional place summary attached to a meal
type Restaurant struct {
	Name          string   `json:"name"`
	Address       string   `json:"address,omitempty"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

// Score returns the relevance score, 0 when absent
func (m Meal) Score() float64 {
	if m.RelevanceScore == nil {
		return 0
	}
	return *m.RelevanceScore
}

// Facts returns nutrition with all fields unknown when the meal has none
func (m Meal) Facts() Nutrition {
	if m.Nutrition == nil {
		return Nutrition{}
	}
	return *m.Nutrition
}

// Price is a display price, the endpoint sends either a string ("$12.99") or a number
type Price string

// UnmarshalJSON accepts string, number and null
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("price string: %w", err)
		}
		*p = Price(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("price number: %w", err)
	}
	*p = Price(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// ResultSet is the cached outcome of the last successful search
type ResultSet struct {
	Meals     []Meal    `json:"meals"`
	FetchedAt time.Time `json:"fetched_at"`
}
