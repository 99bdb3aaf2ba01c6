package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"milemeet/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meetupBody(title string, start, end time.Time) map[string]any {
	return map[string]any{
		"meetup": map[string]any{
			"title":           title,
			"activity":        "run",
			"start_date_time": start.Format(time.RFC3339),
			"end_date_time":   end.Format(time.RFC3339),
			"guests":          5,
			"location_attributes": map[string]any{
				"address":  "100 Trail Rd",
				"city":     "Boulder",
				"state":    "CO",
				"zip_code": "80301",
				"country":  "US",
			},
		},
	}
}

// createMeetup posts a valid meetup and returns its ID.
func createMeetup(t *testing.T, app *fiber.App, token, title string) uint {
	t.Helper()

	start := time.Now().Add(48 * time.Hour)
	resp := doJSON(t, app, http.MethodPost, "/meetups", token, meetupBody(title, start, start.Add(2*time.Hour)))
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create meetup: expected 201, got %d", resp.StatusCode)
	}

	var meetup models.Meetup
	decodeBody(t, resp.Body, &meetup)
	if meetup.ID == 0 {
		t.Fatal("create meetup: missing id")
	}
	return meetup.ID
}

func TestCreateMeetup(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	token, userID := signupUser(t, app, "creator")

	t.Run("success includes nested location", func(t *testing.T) {
		start := time.Now().Add(24 * time.Hour)
		resp := doJSON(t, app, http.MethodPost, "/meetups", token, meetupBody("Trail Run", start, start.Add(time.Hour)))
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var meetup models.Meetup
		decodeBody(t, resp.Body, &meetup)
		assert.Equal(t, "Trail Run", meetup.Title)
		// UserID is not serialized; only the embedded user record travels.
		require.NotNil(t, meetup.User)
		assert.Equal(t, userID, meetup.User.ID)
		assert.Equal(t, "creator", meetup.User.Username)
		require.NotNil(t, meetup.Location)
		assert.Equal(t, "Boulder", meetup.Location.City)
		assert.Equal(t, "80301", meetup.Location.ZipCode)
	})

	t.Run("requires auth", func(t *testing.T) {
		start := time.Now().Add(24 * time.Hour)
		resp := doJSON(t, app, http.MethodPost, "/meetups", "", meetupBody("Nope", start, start.Add(time.Hour)))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("past start rejected", func(t *testing.T) {
		start := time.Now().Add(-time.Hour)
		resp := doJSON(t, app, http.MethodPost, "/meetups", token, meetupBody("Too Late", start, start.Add(2*time.Hour)))
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body errorBody
		decodeBody(t, resp.Body, &body)
		assert.Contains(t, body.Errors, "Start date time must be in the future")
	})
}

func TestGetMeetups(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	token, _ := signupUser(t, app, "lister")
	createMeetup(t, app, token, "First Meetup")
	createMeetup(t, app, token, "Second Meetup")

	resp := doJSON(t, app, http.MethodGet, "/meetups", "", nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Meetups     string `json:"meetups"`
		TotalPages  int    `json:"total_pages"`
		CurrentPage int    `json:"current_page"`
	}
	decodeBody(t, resp.Body, &out)
	assert.Equal(t, 1, out.TotalPages)
	assert.Equal(t, 1, out.CurrentPage)

	// The collection is embedded as a JSON string.
	var meetups []models.Meetup
	require.NoError(t, json.Unmarshal([]byte(out.Meetups), &meetups))
	require.Len(t, meetups, 2)
	assert.NotNil(t, meetups[0].Location)
	assert.NotEmpty(t, meetups[0].User.Username)
}

func TestGetMeetup(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	token, _ := signupUser(t, app, "detailer")
	id := createMeetup(t, app, token, "Detailed Meetup")

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/meetups/%d/comments", id), token, map[string]any{
		"comment": map[string]any{"content": "Count me in"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	t.Run("found with comments", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/meetups/%d", id), "", nil)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var meetup models.Meetup
		decodeBody(t, resp.Body, &meetup)
		assert.Equal(t, "Detailed Meetup", meetup.Title)
		require.Len(t, meetup.Comments, 1)
		assert.Equal(t, "Count me in", meetup.Comments[0].Content)
	})

	t.Run("missing id is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/meetups/9999", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/meetups/abc", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateMeetup(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	ownerToken, _ := signupUser(t, app, "owner_upd")
	otherToken, _ := signupUser(t, app, "other_upd")
	id := createMeetup(t, app, ownerToken, "Original Title")

	start := time.Now().Add(72 * time.Hour)

	t.Run("owner can update", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/meetups/%d", id), ownerToken,
			meetupBody("Renamed Title", start, start.Add(time.Hour)))
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var meetup models.Meetup
		decodeBody(t, resp.Body, &meetup)
		assert.Equal(t, "Renamed Title", meetup.Title)
	})

	t.Run("non-owner gets 401", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/meetups/%d", id), otherToken,
			meetupBody("Hijacked", start, start.Add(time.Hour)))
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body errorBody
		decodeBody(t, resp.Body, &body)
		assert.Contains(t, body.Errors, "Unauthorized")
	})
}

func TestDeleteMeetup(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	ownerToken, _ := signupUser(t, app, "owner_del")
	otherToken, _ := signupUser(t, app, "other_del")
	id := createMeetup(t, app, ownerToken, "Doomed Meetup")

	t.Run("non-owner gets 401 and meetup survives", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/meetups/%d", id), otherToken, nil)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body errorBody
		decodeBody(t, resp.Body, &body)
		assert.Contains(t, body.Errors, "Unauthorized")

		var count int64
		db.Model(&models.Meetup{}).Where("id = ?", id).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("owner delete removes meetup and dependents", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/meetups/%d", id), ownerToken, nil)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		var count int64
		db.Model(&models.Meetup{}).Where("id = ?", id).Count(&count)
		assert.Equal(t, int64(0), count)

		db.Model(&models.Location{}).
			Where("locatable_type = ? AND locatable_id = ?", models.LocatableTypeMeetup, id).
			Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("deleting a missing meetup is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/meetups/%d", id), ownerToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
