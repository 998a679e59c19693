package domain

// location sources
const (
	LocationSourceBrowser  = "browser"
	LocationSourceFallback = "fallback"
)

// GeoPoint is a coordinate pair as sent to the search endpoint
type GeoPoint struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// Location is the resolved position of a session and where it came from
type Location struct {
	GeoPoint
	Source string `json:"source,omitempty"`
	Name   string `json:"name,omitempty"`
}

// FallbackLocation is used when the browser can't or won't report a position
var FallbackLocation = Location{
	GeoPoint: GeoPoint{Lat: 40.7128, Lon: -74.0060},
	Source:   LocationSourceFallback,
	Name:     "New York City",
}

// IsFallback reports whether the location was substituted rather than reported
func (l Location) IsFallback() bool {
	return l.Source == LocationSourceFallback
}
