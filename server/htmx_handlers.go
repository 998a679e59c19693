package server

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/umputun/mealfinder/pkg/domain"
	"github.com/umputun/mealfinder/pkg/locate"
	"github.com/umputun/mealfinder/pkg/search"
)

const (
	// page templates
	templateIndex = "index.html"

	// partial templates
	templateGoalCards   = "goal-cards.html"
	templateRadiusLabel = "radius-label.html"
	templateLocation    = "location.html"
	templateResults     = "results.html"
)

var (
	pages            = []string{templateIndex}
	partialTemplates = []string{
		"templates/" + templateGoalCards,
		"templates/" + templateRadiusLabel,
		"templates/" + templateLocation,
		"templates/" + templateResults,
	}
)

// indexPage holds data for the main page
type indexPage struct {
	Goals        []domain.GoalCard
	Prefs        domain.Preferences
	Radius       float64
	Location     *domain.Location
	NeedLocation bool
	Results      domain.ResultsView
	Version      string
}

// indexHandler renders the main page with persisted preferences and the cached results of the session
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	prefs, err := s.prefs.GetPreferences(ctx, clientID(r))
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to load preferences", err)
		return
	}

	sess, err := s.sessions.Get(ctx, sessionID(r))
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}

	data := indexPage{
		Goals:        domain.GoalCards(prefs.Goal),
		Prefs:        prefs,
		Radius:       prefs.RadiusValue(),
		Location:     sess.Location,
		NeedLocation: !sess.HasLocation(),
		Results:      sess.RestoredView(),
		Version:      s.version,
	}

	if err := s.renderPage(w, templateIndex, data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render page", err)
	}
}

// selectGoalHandler persists the selected goal and re-renders the goal cards
func (s *Server) selectGoalHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	goal := r.FormValue(domain.PrefGoal)
	if _, ok := domain.GoalByKey(goal); !ok {
		s.respondWithError(w, http.StatusBadRequest, "Unknown goal", nil)
		return
	}

	if err := s.prefs.SetPreference(r.Context(), clientID(r), domain.PrefGoal, goal); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to save goal", err)
		return
	}

	s.renderPartial(w, templateGoalCards, domain.GoalCards(goal))
}

// preferenceHandler persists a single filter field exactly as entered.
// The radius field answers with its updated label, other fields with no content.
func (s *Server) preferenceHandler(w http.ResponseWriter, r *http.Request) {
	field := r.PathValue("field")
	if !domain.IsPreferenceKey(field) || field == domain.PrefGoal {
		s.respondWithError(w, http.StatusBadRequest, "Unknown preference", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	value := r.FormValue(field)
	if err := s.prefs.SetPreference(r.Context(), clientID(r), field, value); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to save preference", err)
		return
	}

	if field == domain.PrefRadius {
		s.renderPartial(w, templateRadiusLabel, domain.Preferences{Radius: value}.RadiusValue())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// locationHandler receives the outcome of the browser geolocation hook
func (s *Server) locationHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	loc, err := s.locator.Resolve(r.Context(), sessionID(r), locationReport(r))
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to resolve location", err)
		return
	}

	s.renderPartial(w, templateLocation, loc)
}

// locationReport reads the geolocation hook form, failures and unparsable coordinates carry no point
func locationReport(r *http.Request) locate.Report {
	if reason := r.FormValue("error"); reason != "" {
		return locate.Report{Reason: reason}
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(r.FormValue("lat")), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(r.FormValue("lon")), 64)
	if errLat != nil || errLon != nil {
		return locate.Report{Reason: "no coordinates reported"}
	}
	return locate.Report{Point: &domain.GeoPoint{Lat: lat, Lon: lon}}
}

// searchHandler schedules a search for the session and switches the results area to loading.
// Without a resolved location nothing happens and nothing is swapped.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	err := s.dispatcher.Trigger(r.Context(), sessionID(r), clientID(r))
	if errors.Is(err, search.ErrLocationUnresolved) {
		log.Printf("[DEBUG] search skipped, location of session %s not resolved", sessionID(r))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to start search", err)
		return
	}

	s.renderPartial(w, templateResults, domain.ResultsView{State: domain.StatusLoading})
}

// resultsHandler renders the current results area, polled while a search is loading
func (s *Server) resultsHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), sessionID(r))
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}
	s.renderPartial(w, templateResults, sess.View())
}

// renderPage renders a pre-parsed page template
func (s *Server) renderPage(w http.ResponseWriter, templateName string, data any) error {
	tmpl, ok := s.pageTemplates[templateName]
	if !ok {
		return fmt.Errorf("template %s not found", templateName)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, templateName, data)
}

// renderPartial renders an htmx fragment
func (s *Server) renderPartial(w http.ResponseWriter, templateName string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, templateName, data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render", err)
	}
}

// templateFuncs are helpers shared by pages and partials
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"score": func(m domain.Meal) string {
			return fmt.Sprintf("%.2f", m.Score())
		},
		// nutrient shows an unknown value as "?"
		"nutrient": func(v *float64) string {
			if v == nil {
				return "?"
			}
			return strconv.FormatFloat(*v, 'f', -1, 64)
		},
		"miles": func(v *float64) string {
			if v == nil {
				return ""
			}
			return fmt.Sprintf("%.1f mi", *v)
		},
		"radius": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
	}
}
