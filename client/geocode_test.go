package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "100 Main St, Boulder, CO, 80301, US", q.Get("q"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "1", q.Get("limit"))
		// The session token must never reach the geocoder.
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewEncoder(w).Encode([]map[string]string{{
			"lat":          "40.0149856",
			"lon":          "-105.2705456",
			"display_name": "Main Street, Boulder, Colorado, USA",
		}}))
	}))
	defer srv.Close()

	gc := NewGeocodingClientWithURLs(srv.URL, srv.URL, NewHTTPClient(staticTokens("abc123")), NewToaster())
	result := gc.Geocode(context.Background(), Location{
		Address: "100 Main St",
		City:    "Boulder",
		State:   "CO",
		ZipCode: "80301",
		Country: "US",
	})

	require.NotNil(t, result)
	assert.InDelta(t, 40.0149856, result.Lat, 1e-9)
	assert.InDelta(t, -105.2705456, result.Lng, 1e-9)
	assert.Equal(t, "Main Street, Boulder, Colorado, USA", result.DisplayName)
}

func TestGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode([]any{}))
	}))
	defer srv.Close()

	toaster := NewToaster()
	gc := NewGeocodingClientWithURLs(srv.URL, srv.URL, http.DefaultClient, toaster)

	assert.Nil(t, gc.Geocode(context.Background(), Location{Address: "nowhere"}))

	toasts := toaster.Toasts.Get()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Address not found.", toasts[0].Message)
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	toaster := NewToaster()
	gc := NewGeocodingClientWithURLs(srv.URL, srv.URL, http.DefaultClient, toaster)

	assert.Nil(t, gc.Geocode(context.Background(), Location{Address: "anywhere"}))

	toasts := toaster.Toasts.Get()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Geocoding failed.", toasts[0].Message)
}

func TestReverseGeocodeFallbackChain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reverse", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))
		// No road or city fields: the fallbacks must kick in.
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"address": map[string]string{
				"hamlet":       "Old Town",
				"town":         "Lake Oswego",
				"state":        "Oregon",
				"postcode":     "97034",
				"country_code": "us",
			},
		}))
	}))
	defer srv.Close()

	gc := NewGeocodingClientWithURLs(srv.URL, srv.URL, http.DefaultClient, NewToaster())
	loc := gc.ReverseGeocode(context.Background(), 45.42, -122.67)

	require.NotNil(t, loc)
	assert.Equal(t, "Old Town", loc.Address)
	assert.Equal(t, "Lake Oswego", loc.City)
	assert.Equal(t, "Oregon", loc.State)
	assert.Equal(t, "97034", loc.ZipCode)
	assert.Equal(t, "US", loc.Country)
}

func TestReverseGeocodePrefersRoadAndCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"address": map[string]string{
				"road":         "Pearl Street",
				"hamlet":       "ignored",
				"city":         "Boulder",
				"town":         "ignored",
				"village":      "ignored",
				"state":        "Colorado",
				"postcode":     "80302",
				"country_code": "us",
			},
		}))
	}))
	defer srv.Close()

	gc := NewGeocodingClientWithURLs(srv.URL, srv.URL, http.DefaultClient, NewToaster())
	loc := gc.ReverseGeocode(context.Background(), 40.02, -105.28)

	require.NotNil(t, loc)
	assert.Equal(t, "Pearl Street", loc.Address)
	assert.Equal(t, "Boulder", loc.City)
}

func TestReverseGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	toaster := NewToaster()
	gc := NewGeocodingClientWithURLs(srv.URL, srv.URL, http.DefaultClient, toaster)

	assert.Nil(t, gc.ReverseGeocode(context.Background(), 0, 0))

	toasts := toaster.Toasts.Get()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Reverse geocoding failed.", toasts[0].Message)
}

func TestLookupZip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/us/97034", r.URL.Path)
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"places": []map[string]string{{
				"place name":         "Lake Oswego",
				"state abbreviation": "OR",
			}},
		}))
	}))
	defer srv.Close()

	gc := NewGeocodingClientWithURLs(srv.URL, srv.URL, http.DefaultClient, NewToaster())
	place := gc.LookupZip(context.Background(), "97034")

	require.NotNil(t, place)
	assert.Equal(t, "Lake Oswego", place.City)
	assert.Equal(t, "OR", place.State)
}

func TestLookupZipUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	gc := NewGeocodingClientWithURLs(srv.URL, srv.URL, http.DefaultClient, NewToaster())
	assert.Nil(t, gc.LookupZip(context.Background(), "00000"))
}
