package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_ResolveLocation(t *testing.T) {
	s := NewSession("s1")
	assert.False(t, s.HasLocation())

	first := Location{GeoPoint: GeoPoint{Lat: 1, Lon: 2}, Source: LocationSourceBrowser}
	assert.Equal(t, first, s.ResolveLocation(first))
	assert.True(t, s.HasLocation())

	// second resolution doesn't replace the first one
	assert.Equal(t, first, s.ResolveLocation(FallbackLocation))
	assert.Equal(t, first, *s.Location)
}

func TestSession_Views(t *testing.T) {
	s := NewSession("s1")
	assert.Equal(t, ResultsView{State: StatusIdle}, s.View())
	assert.Equal(t, ResultsView{State: StatusIdle}, s.RestoredView())

	s.MarkLoading()
	assert.Equal(t, StatusLoading, s.View().State)
	assert.Equal(t, StatusLoading, s.RestoredView().State)

	s.StoreResults(nil)
	assert.Equal(t, ResultsView{State: StatusReady, Meals: []Meal{}}, s.View())

	s.StoreResults([]Meal{{Name: "a"}, {Name: "b"}})
	assert.Equal(t, []Meal{{Name: "a"}, {Name: "b"}}, s.View().Meals)

	s.MarkFailed()
	assert.Equal(t, ResultsView{State: StatusError}, s.View())
	// reload shows the cached results instead of the error
	restored := s.RestoredView()
	assert.Equal(t, StatusReady, restored.State)
	assert.Len(t, restored.Meals, 2)
}
