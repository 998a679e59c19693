package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchRequest_Payload(t *testing.T) {
	loc := Location{GeoPoint: GeoPoint{Lat: 51.5, Lon: -0.12}, Source: LocationSourceBrowser}

	t.Run("empty protein inputs omit both keys", func(t *testing.T) {
		req := NewSearchRequest(loc, Preferences{Goal: "keto", Radius: "3"})
		data, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"location":{"lat":51.5,"lon":-0.12},"goal":"keto","radius":3,
			"override_macros":{},"exclude_ingredients":[]}`, string(data))
	})

	t.Run("protein bounds and exclusions", func(t *testing.T) {
		req := NewSearchRequest(loc, Preferences{Goal: "balanced", Radius: "5", MinProtein: "100",
			MaxProtein: "200", ExcludeIngredients: "eggs, , peanuts ,"})
		data, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"location":{"lat":51.5,"lon":-0.12},"goal":"balanced","radius":5,
			"override_macros":{"min_protein":100,"max_protein":200},"exclude_ingredients":["eggs","peanuts"]}`, string(data))
	})

	t.Run("source is not sent", func(t *testing.T) {
		data, err := json.Marshal(NewSearchRequest(FallbackLocation, DefaultPreferences()))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "fallback")
		assert.Contains(t, string(data), `"goal":"muscle_gain"`)
	})
}

func TestSearchResponse_MealsPresence(t *testing.T) {
	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(`{"meals":[]}`), &resp))
	assert.NotNil(t, resp.Meals)
	assert.Empty(t, resp.Meals)

	resp = SearchResponse{}
	require.NoError(t, json.Unmarshal([]byte(`{"total_results":0}`), &resp))
	assert.Nil(t, resp.Meals)

	resp = SearchResponse{}
	require.NoError(t, json.Unmarshal([]byte(`{"meals":null}`), &resp))
	assert.Nil(t, resp.Meals)
}
