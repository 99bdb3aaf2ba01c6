package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Default third-party endpoints. Overridable for tests.
const (
	DefaultNominatimURL  = "https://nominatim.openstreetmap.org"
	DefaultZippopotamURL = "https://api.zippopotam.us"
)

// GeoResult is a resolved coordinate for an address.
type GeoResult struct {
	Lat         float64
	Lng         float64
	DisplayName string
}

// GeocodingClient wraps the third-party free-text geocoding service. Its
// requests are flagged to skip the bearer transport — the session token must
// never reach a third party.
type GeocodingClient struct {
	nominatimURL  string
	zippopotamURL string
	http          *http.Client
	toaster       *Toaster
}

// NewGeocodingClient returns a client against the public endpoints.
func NewGeocodingClient(httpClient *http.Client, toaster *Toaster) *GeocodingClient {
	return &GeocodingClient{
		nominatimURL:  DefaultNominatimURL,
		zippopotamURL: DefaultZippopotamURL,
		http:          httpClient,
		toaster:       toaster,
	}
}

// NewGeocodingClientWithURLs returns a client against custom endpoints.
func NewGeocodingClientWithURLs(nominatimURL, zippopotamURL string, httpClient *http.Client, toaster *Toaster) *GeocodingClient {
	return &GeocodingClient{
		nominatimURL:  nominatimURL,
		zippopotamURL: zippopotamURL,
		http:          httpClient,
		toaster:       toaster,
	}
}

// Geocode resolves a postal address to a coordinate. An empty result set
// notifies "Address not found."; a non-2xx response notifies "Geocoding
// failed."; both return nil with nothing emitted downstream.
func (g *GeocodingClient) Geocode(ctx context.Context, loc Location) *GeoResult {
	parts := []string{}
	for _, part := range []string{loc.Address, loc.City, loc.State, loc.ZipCode, loc.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	query := url.Values{}
	query.Set("q", strings.Join(parts, ", "))
	query.Set("format", "json")
	query.Set("limit", "1")

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := g.get(ctx, g.nominatimURL+"/search?"+query.Encode(), &results); err != nil {
		g.toaster.Error("Geocoding failed.")
		return nil
	}
	if len(results) == 0 {
		g.toaster.Error("Address not found.")
		return nil
	}

	lat, _ := strconv.ParseFloat(results[0].Lat, 64)
	lng, _ := strconv.ParseFloat(results[0].Lon, 64)
	return &GeoResult{Lat: lat, Lng: lng, DisplayName: results[0].DisplayName}
}

// ReverseGeocode resolves a coordinate back to a partial postal address.
// Address falls back road→hamlet→""; city falls back city→town→village→"";
// the country code is uppercased. A non-2xx response notifies "Reverse
// geocoding failed." and returns nil.
func (g *GeocodingClient) ReverseGeocode(ctx context.Context, lat, lon float64) *Location {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("format", "json")

	var out struct {
		Address struct {
			Road        string `json:"road"`
			Hamlet      string `json:"hamlet"`
			City        string `json:"city"`
			Town        string `json:"town"`
			Village     string `json:"village"`
			State       string `json:"state"`
			Postcode    string `json:"postcode"`
			CountryCode string `json:"country_code"`
		} `json:"address"`
	}
	if err := g.get(ctx, g.nominatimURL+"/reverse?"+query.Encode(), &out); err != nil {
		g.toaster.Error("Reverse geocoding failed.")
		return nil
	}

	addr := out.Address
	return &Location{
		Address: firstNonEmpty(addr.Road, addr.Hamlet),
		City:    firstNonEmpty(addr.City, addr.Town, addr.Village),
		State:   addr.State,
		ZipCode: addr.Postcode,
		Country: strings.ToUpper(addr.CountryCode),
	}
}

// ZipPlace is the city/state pair a US ZIP code resolves to.
type ZipPlace struct {
	City  string
	State string
}

// LookupZip resolves a US ZIP code to its city and state abbreviation, used
// to auto-fill the location form. Returns nil when the ZIP is unknown.
func (g *GeocodingClient) LookupZip(ctx context.Context, zip string) *ZipPlace {
	var out struct {
		Places []map[string]string `json:"places"`
	}
	if err := g.get(ctx, fmt.Sprintf("%s/us/%s", g.zippopotamURL, zip), &out); err != nil {
		return nil
	}
	if len(out.Places) == 0 {
		return nil
	}
	return &ZipPlace{
		City:  out.Places[0]["place name"],
		State: out.Places[0]["state abbreviation"],
	}
}

func (g *GeocodingClient) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(WithoutAuth(ctx), http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("geocoding service returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
