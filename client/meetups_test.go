package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMeetupList(t *testing.T, w http.ResponseWriter, meetups []Meetup, totalPages, currentPage int) {
	t.Helper()
	embedded, err := json.Marshal(meetups)
	require.NoError(t, err)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"meetups":      string(embedded),
		"total_pages":  totalPages,
		"current_page": currentPage,
	}))
}

func writeAPIError(w http.ResponseWriter, status int, messages ...string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"errors": messages})
}

func sampleMeetup(id uint, title string) Meetup {
	return Meetup{
		ID:       id,
		Title:    title,
		Activity: "hiking",
		Location: &Location{City: "Boulder", State: "CO", ZipCode: "80301", Country: "US"},
	}
}

func TestLoadMeetups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/meetups", r.URL.Path)
		writeMeetupList(t, w, []Meetup{sampleMeetup(1, "Sunrise hike"), sampleMeetup(2, "River paddle")}, 3, 1)
	}))
	defer srv.Close()

	mc := NewMeetupClient(srv.URL, http.DefaultClient, NewToaster())
	mc.LoadMeetups(context.Background(), 1)

	meetups := mc.Meetups.Get()
	require.Len(t, meetups, 2)
	assert.Equal(t, "Sunrise hike", meetups[0].Title)
	require.NotNil(t, meetups[0].Location)
	assert.Equal(t, "Boulder", meetups[0].Location.City)
	assert.Equal(t, 3, mc.TotalPages.Get())
	assert.Equal(t, 1, mc.CurrentPage.Get())
	assert.False(t, mc.Loading.Get())
}

func TestLoadMeetupsFailureResetsState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusInternalServerError, "Internal server error")
	}))
	defer srv.Close()

	toaster := NewToaster()
	mc := NewMeetupClient(srv.URL, http.DefaultClient, toaster)
	mc.Meetups.Set([]Meetup{sampleMeetup(1, "Stale entry")})

	mc.LoadMeetups(context.Background(), 1)

	assert.Empty(t, mc.Meetups.Get())
	assert.False(t, mc.Loading.Get())
	toasts := toaster.Toasts.Get()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Internal server error", toasts[0].Message)
}

func TestLoadMeetupsLastStartedWins(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "" {
			close(entered)
			<-release
			writeMeetupList(t, w, []Meetup{sampleMeetup(1, "stale page")}, 2, 1)
			return
		}
		writeMeetupList(t, w, []Meetup{sampleMeetup(2, "fresh page")}, 2, 2)
	}))
	defer srv.Close()

	mc := NewMeetupClient(srv.URL, http.DefaultClient, NewToaster())

	done := make(chan struct{})
	go func() {
		defer close(done)
		mc.LoadMeetups(context.Background(), 1)
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first load never reached the server")
	}

	// A second load starts while the first is still in flight.
	mc.LoadMeetups(context.Background(), 2)

	close(release)
	<-done

	// The slow first response must not clobber the newer one.
	meetups := mc.Meetups.Get()
	require.Len(t, meetups, 1)
	assert.Equal(t, "fresh page", meetups[0].Title)
	assert.Equal(t, 2, mc.CurrentPage.Get())
}

func TestAddMeetup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body struct {
			Meetup MeetupDraft `json:"meetup"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		created := sampleMeetup(101, body.Meetup.Title)
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(created))
	}))
	defer srv.Close()

	toaster := NewToaster()
	mc := NewMeetupClient(srv.URL, http.DefaultClient, toaster)

	created, err := mc.AddMeetup(context.Background(), MeetupDraft{Title: "Night ride", Activity: "cycling"})
	require.NoError(t, err)
	assert.Equal(t, uint(101), created.ID)

	meetups := mc.Meetups.Get()
	require.Len(t, meetups, 1)
	assert.Equal(t, uint(101), meetups[0].ID)
	assert.Equal(t, "Night ride", meetups[0].Title)

	toasts := toaster.Toasts.Get()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Meetup created!", toasts[0].Message)
}

func TestUpdateMeetupReplacesListEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/meetups/2", r.URL.Path)
		require.NoError(t, json.NewEncoder(w).Encode(sampleMeetup(2, "Renamed")))
	}))
	defer srv.Close()

	mc := NewMeetupClient(srv.URL, http.DefaultClient, NewToaster())
	mc.Meetups.Set([]Meetup{sampleMeetup(1, "Keep me"), sampleMeetup(2, "Old name")})

	_, err := mc.UpdateMeetup(context.Background(), 2, MeetupDraft{Title: "Renamed"})
	require.NoError(t, err)

	meetups := mc.Meetups.Get()
	require.Len(t, meetups, 2)
	assert.Equal(t, "Keep me", meetups[0].Title)
	assert.Equal(t, "Renamed", meetups[1].Title)
}

func TestDeleteMeetup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	mc := NewMeetupClient(srv.URL, http.DefaultClient, NewToaster())
	mc.Meetups.Set([]Meetup{sampleMeetup(1, "Doomed"), sampleMeetup(2, "Survivor")})

	require.NoError(t, mc.DeleteMeetup(context.Background(), 1))

	meetups := mc.Meetups.Get()
	require.Len(t, meetups, 1)
	assert.Equal(t, uint(2), meetups[0].ID)

	// Deleting an id not present locally leaves the list alone.
	require.NoError(t, mc.DeleteMeetup(context.Background(), 99))
	assert.Len(t, mc.Meetups.Get(), 1)
}

func TestDeleteMeetupLeavesPriorSnapshotIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	mc := NewMeetupClient(srv.URL, http.DefaultClient, NewToaster())
	mc.Meetups.Set([]Meetup{sampleMeetup(1, "First"), sampleMeetup(2, "Second"), sampleMeetup(3, "Third")})

	snapshot := mc.Meetups.Get()
	require.NoError(t, mc.DeleteMeetup(context.Background(), 1))

	// The slice handed out before the delete must not be rewritten in place.
	require.Len(t, snapshot, 3)
	assert.Equal(t, "First", snapshot[0].Title)
	assert.Equal(t, "Second", snapshot[1].Title)
	assert.Equal(t, "Third", snapshot[2].Title)
}

func TestDeleteMeetupUnauthorizedKeepsList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized: you can only delete your own meetups")
	}))
	defer srv.Close()

	toaster := NewToaster()
	mc := NewMeetupClient(srv.URL, http.DefaultClient, toaster)
	mc.Meetups.Set([]Meetup{sampleMeetup(1, "Not yours")})

	err := mc.DeleteMeetup(context.Background(), 1)
	require.Error(t, err)

	assert.Len(t, mc.Meetups.Get(), 1)
	toasts := toaster.Toasts.Get()
	require.Len(t, toasts, 1)
	assert.Contains(t, toasts[0].Message, "Unauthorized")
}

func TestJoinThenLeaveMeetup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/meetups/1/join":
			w.WriteHeader(http.StatusCreated)
			require.NoError(t, json.NewEncoder(w).Encode(Participant{
				ID: 55, UserID: 7, MeetupID: 1,
				User: &UserSummary{ID: 7, Username: "rider1"},
			}))
		case r.Method == http.MethodDelete && r.URL.Path == "/meetups/1/leave":
			require.NoError(t, json.NewEncoder(w).Encode(map[string]string{
				"message": "Successfully left the meetup",
			}))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	mc := NewMeetupClient(srv.URL, http.DefaultClient, NewToaster())
	mc.Meetups.Set([]Meetup{sampleMeetup(1, "Group run"), sampleMeetup(2, "Untouched")})

	require.NoError(t, mc.JoinMeetup(context.Background(), 1))

	meetups := mc.Meetups.Get()
	require.Len(t, meetups[0].Participants, 1)
	assert.Equal(t, uint(7), meetups[0].Participants[0].UserID)
	assert.Empty(t, meetups[1].Participants)

	require.NoError(t, mc.LeaveMeetup(context.Background(), 1, 7))
	assert.Empty(t, mc.Meetups.Get()[0].Participants)
}

func TestGetMeetupDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meetups/3" {
			writeAPIError(w, http.StatusNotFound, "Meetup not found")
			return
		}
		detail := sampleMeetup(3, "With comments")
		detail.Comments = []Comment{{ID: 1, Content: "See you there"}}
		require.NoError(t, json.NewEncoder(w).Encode(detail))
	}))
	defer srv.Close()

	mc := NewMeetupClient(srv.URL, http.DefaultClient, NewToaster())

	mc.GetMeetup(context.Background(), 3)
	detail := mc.MeetupDetail.Get()
	require.NotNil(t, detail)
	assert.Equal(t, "With comments", detail.Title)
	require.Len(t, detail.Comments, 1)

	// A failed fetch nulls the slot instead of leaving a stale record.
	mc.GetMeetup(context.Background(), 99)
	assert.Nil(t, mc.MeetupDetail.Get())
	assert.False(t, mc.Loading.Get())
}

func TestMeetupEditSlot(t *testing.T) {
	mc := NewMeetupClient("http://unused", http.DefaultClient, NewToaster())

	meetup := sampleMeetup(4, "Editable")
	mc.SetMeetupToEdit(&meetup)
	require.NotNil(t, mc.MeetupToEdit.Get())
	assert.Equal(t, uint(4), mc.MeetupToEdit.Get().ID)

	mc.ClearMeetupToEdit()
	assert.Nil(t, mc.MeetupToEdit.Get())
}
