package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/mealfinder/pkg/config"
	"github.com/umputun/mealfinder/pkg/domain"
)

func testRequest() domain.SearchRequest {
	loc := domain.Location{GeoPoint: domain.GeoPoint{Lat: 40.7128, Lon: -74.006}}
	return domain.NewSearchRequest(loc, domain.Preferences{Goal: "keto", Radius: "2", MinProtein: "100",
		MaxProtein: "200", ExcludeIngredients: "eggs, , peanuts ,"})
}

func TestClient_Search(t *testing.T) {
	t.Run("posts payload with api key", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/meals/find", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "test-free-key", r.Header.Get("X-API-Key"))
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.NoError(t, json.Unmarshal(body, &gotBody))
			_, _ = w.Write([]byte(`{"meals":[{"name":"Steak Salad","relevance_score":0.9,"tags":["keto"]},
				{"name":"Egg-free Bowl"}],"total_results":2,"location_summary":"Near NYC"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL+"/api/v1/meals/find", "test-free-key", 5*time.Second)
		meals, err := client.Search(context.Background(), testRequest())
		require.NoError(t, err)
		require.Len(t, meals, 2)
		assert.Equal(t, "Steak Salad", meals[0].Name)
		assert.Equal(t, "Egg-free Bowl", meals[1].Name, "server order kept")

		assert.Equal(t, "keto", gotBody["goal"])
		assert.InDelta(t, 2.0, gotBody["radius"], 0.0001)
		assert.Equal(t, map[string]any{"lat": 40.7128, "lon": -74.006}, gotBody["location"])
		assert.Equal(t, map[string]any{"min_protein": 100.0, "max_protein": 200.0}, gotBody["override_macros"])
		assert.Equal(t, []any{"eggs", "peanuts"}, gotBody["exclude_ingredients"])
	})

	t.Run("empty list is valid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"meals":[]}`))
		}))
		defer server.Close()

		meals, err := NewClient(server.URL, "", time.Second).Search(context.Background(), testRequest())
		require.NoError(t, err)
		assert.NotNil(t, meals)
		assert.Empty(t, meals)
	})

	t.Run("default config sends api key", func(t *testing.T) {
		var keys []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			keys = r.Header.Values("X-Api-Key")
			_, _ = w.Write([]byte(`{"meals":[]}`))
		}))
		defer server.Close()

		cfg := config.Default()
		_, err := NewClient(server.URL, cfg.Search.APIKey, time.Second).Search(context.Background(), testRequest())
		require.NoError(t, err)
		assert.Equal(t, []string{"test-free-key"}, keys)
	})

	t.Run("malformed responses", func(t *testing.T) {
		for name, body := range map[string]string{
			"missing meals": `{"success":false,"error":{"code":"bad_goal"}}`,
			"null meals":    `{"meals":null}`,
			"not json":      `<html>oops</html>`,
			"json null":     `null`,
		} {
			t.Run(name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte(body))
				}))
				defer server.Close()

				_, err := NewClient(server.URL, "k", time.Second).Search(context.Background(), testRequest())
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedResponse)
			})
		}
	})

	t.Run("error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"bad key"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "k", time.Second).Search(context.Background(), testRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code 401")
	})

	t.Run("network error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := NewClient(url, "k", time.Second).Search(context.Background(), testRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "post search request")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"meals":[]}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "k", 20*time.Millisecond).Search(context.Background(), testRequest())
		require.Error(t, err)
	})

	t.Run("markup stripped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"meals":[{"name":"<b>Fish</b> & Chips<script>alert(1)</script>",
				"description":"<img src=x onerror=alert(1)>Crispy","tags":["<i>fried</i>","<br>"],
				"price":9.5,"restaurant":{"name":"<a href='x'>Chippy</a>"}}]}`))
		}))
		defer server.Close()

		meals, err := NewClient(server.URL, "k", time.Second).Search(context.Background(), testRequest())
		require.NoError(t, err)
		require.Len(t, meals, 1)
		assert.Equal(t, "Fish & Chips", meals[0].Name)
		assert.Equal(t, "Crispy", meals[0].Description)
		assert.Equal(t, []string{"fried"}, meals[0].Tags)
		assert.Equal(t, domain.Price("9.5"), meals[0].Price)
		assert.Equal(t, "Chippy", meals[0].Restaurant.Name)
	})
}
