package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// MeetupClient wraps the meetup endpoints and mirrors the latest responses as
// observable state.
type MeetupClient struct {
	api     api
	toaster *Toaster

	// generation orders concurrent LoadMeetups calls: a response only lands
	// if no newer load has started since (last-started-wins).
	generation atomic.Uint64

	// Meetups is the latest fetched collection.
	Meetups *Signal[[]Meetup]
	// MeetupToEdit is the single "being edited" slot.
	MeetupToEdit *Signal[*Meetup]
	// MeetupDetail is the single "detail view" slot, comments included.
	MeetupDetail *Signal[*Meetup]
	// Loading gates spinners while a request is in flight.
	Loading *Signal[bool]
	// TotalPages and CurrentPage mirror the server's pagination fields.
	TotalPages  *Signal[int]
	CurrentPage *Signal[int]
}

// NewMeetupClient builds a meetup client over an authenticated HTTP client.
func NewMeetupClient(baseURL string, httpClient *http.Client, toaster *Toaster) *MeetupClient {
	return &MeetupClient{
		api:          api{baseURL: baseURL, http: httpClient},
		toaster:      toaster,
		Meetups:      NewSignal([]Meetup(nil)),
		MeetupToEdit: NewSignal[*Meetup](nil),
		MeetupDetail: NewSignal[*Meetup](nil),
		Loading:      NewSignal(false),
		TotalPages:   NewSignal(1),
		CurrentPage:  NewSignal(1),
	}
}

type meetupListResponse struct {
	Meetups     string `json:"meetups"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
}

// LoadMeetups fetches one page of the collection. The list arrives embedded
// as a JSON string and is parsed here. On any error the list resets to empty
// and loading clears — it is never left stuck.
func (m *MeetupClient) LoadMeetups(ctx context.Context, page int) {
	gen := m.generation.Add(1)
	m.Loading.Set(true)

	var out meetupListResponse
	err := m.api.do(ctx, http.MethodGet, listPath("/meetups", page), nil, &out)

	var meetups []Meetup
	if err == nil {
		err = json.Unmarshal([]byte(out.Meetups), &meetups)
	}

	// A newer load started while this one was in flight; drop this response.
	if m.generation.Load() != gen {
		return
	}

	if err != nil {
		m.Meetups.Set(nil)
		m.Loading.Set(false)
		m.notifyErr(err, "Could not load meetups.")
		return
	}

	m.Meetups.Set(meetups)
	m.TotalPages.Set(out.TotalPages)
	m.CurrentPage.Set(out.CurrentPage)
	m.Loading.Set(false)
}

// GetMeetup fetches the extended record (comments included) into the detail
// slot. The slot is nulled and loading cleared on error.
func (m *MeetupClient) GetMeetup(ctx context.Context, id uint) {
	m.Loading.Set(true)

	var meetup Meetup
	if err := m.api.do(ctx, http.MethodGet, meetupPath(id), nil, &meetup); err != nil {
		m.MeetupDetail.Set(nil)
		m.Loading.Set(false)
		m.notifyErr(err, "Could not load meetup.")
		return
	}

	m.MeetupDetail.Set(&meetup)
	m.Loading.Set(false)
}

// AddMeetup posts a draft. On success the created record is appended to the
// list; on failure local state is left untouched — no retry.
func (m *MeetupClient) AddMeetup(ctx context.Context, draft MeetupDraft) (*Meetup, error) {
	var created Meetup
	err := m.api.do(ctx, http.MethodPost, "/meetups", map[string]any{"meetup": draft}, &created)
	if err != nil {
		m.notifyErr(err, "Could not create meetup.")
		return nil, err
	}

	m.Meetups.Update(func(meetups []Meetup) []Meetup {
		return append(meetups, created)
	})
	m.toaster.Success("Meetup created!")
	return &created, nil
}

// UpdateMeetup puts the full draft to /meetups/:id and replaces the matching
// list entry on success.
func (m *MeetupClient) UpdateMeetup(ctx context.Context, id uint, draft MeetupDraft) (*Meetup, error) {
	var updated Meetup
	err := m.api.do(ctx, http.MethodPut, meetupPath(id), map[string]any{"meetup": draft}, &updated)
	if err != nil {
		m.notifyErr(err, "Could not update meetup.")
		return nil, err
	}

	m.Meetups.Update(func(meetups []Meetup) []Meetup {
		for i := range meetups {
			if meetups[i].ID == id {
				meetups[i] = updated
			}
		}
		return meetups
	})
	m.toaster.Success("Meetup updated!")
	return &updated, nil
}

// DeleteMeetup removes the meetup server-side, then drops the matching entry
// from the list. Deleting an id already absent from the list is a no-op
// locally.
func (m *MeetupClient) DeleteMeetup(ctx context.Context, id uint) error {
	if err := m.api.do(ctx, http.MethodDelete, meetupPath(id), nil, nil); err != nil {
		m.notifyErr(err, "Could not delete meetup.")
		return err
	}

	m.Meetups.Update(func(meetups []Meetup) []Meetup {
		// Fresh slice: callers may still hold the previous value.
		out := make([]Meetup, 0, len(meetups))
		for _, meetup := range meetups {
			if meetup.ID != id {
				out = append(out, meetup)
			}
		}
		return out
	})
	m.toaster.Success("Meetup deleted.")
	return nil
}

// JoinMeetup appends the returned participant record to the matching meetup.
func (m *MeetupClient) JoinMeetup(ctx context.Context, id uint) error {
	var participant Participant
	if err := m.api.do(ctx, http.MethodPost, meetupPath(id)+"/join", nil, &participant); err != nil {
		m.notifyErr(err, "Could not join meetup.")
		return err
	}

	m.Meetups.Update(func(meetups []Meetup) []Meetup {
		for i := range meetups {
			if meetups[i].ID == id {
				meetups[i].Participants = append(meetups[i].Participants, participant)
			}
		}
		return meetups
	})
	m.toaster.Success("You joined the meetup!")
	return nil
}

// LeaveMeetup removes the participant entry matching userID from the
// matching meetup.
func (m *MeetupClient) LeaveMeetup(ctx context.Context, id, userID uint) error {
	if err := m.api.do(ctx, http.MethodDelete, meetupPath(id)+"/leave", nil, nil); err != nil {
		m.notifyErr(err, "Could not leave meetup.")
		return err
	}

	m.Meetups.Update(func(meetups []Meetup) []Meetup {
		for i := range meetups {
			if meetups[i].ID != id {
				continue
			}
			kept := make([]Participant, 0, len(meetups[i].Participants))
			for _, p := range meetups[i].Participants {
				if p.UserID != userID {
					kept = append(kept, p)
				}
			}
			meetups[i].Participants = kept
		}
		return meetups
	})
	m.toaster.Success("You left the meetup.")
	return nil
}

// SetMeetupToEdit fills the edit slot.
func (m *MeetupClient) SetMeetupToEdit(meetup *Meetup) {
	m.MeetupToEdit.Set(meetup)
}

// ClearMeetupToEdit resets the edit slot, called when leaving the edit view.
func (m *MeetupClient) ClearMeetupToEdit() {
	m.MeetupToEdit.Set(nil)
}

// ClearMeetupDetail resets the detail slot, called when leaving the detail
// view.
func (m *MeetupClient) ClearMeetupDetail() {
	m.MeetupDetail.Set(nil)
}

func (m *MeetupClient) notifyErr(err error, fallback string) {
	if m.toaster == nil {
		return
	}
	if apiErr, ok := err.(*APIError); ok {
		m.toaster.Error(apiErr.FirstMessage(fallback))
		return
	}
	m.toaster.Error(fallback)
}
