package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

type cachedMeetup struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func TestGetSetJSON(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	var out cachedMeetup
	found, err := GetJSON(ctx, MeetupKey(1), &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, MeetupKey(1), cachedMeetup{ID: 1, Title: "Sunrise hike"}, MeetupTTL))

	found, err = GetJSON(ctx, MeetupKey(1), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Sunrise hike", out.Title)
}

func TestAside(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedMeetup) func() error {
		return func() error {
			fetches++
			*dest = cachedMeetup{ID: 2, Title: "River paddle"}
			return nil
		}
	}

	var first cachedMeetup
	require.NoError(t, Aside(ctx, MeetupKey(2), &first, MeetupTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)

	// Second read comes from the cache.
	var second cachedMeetup
	require.NoError(t, Aside(ctx, MeetupKey(2), &second, MeetupTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "River paddle", second.Title)

	// Invalidation forces a refetch.
	InvalidateMeetup(ctx, 2)
	var third cachedMeetup
	require.NoError(t, Aside(ctx, MeetupKey(2), &third, MeetupTTL, fetch(&third)))
	assert.Equal(t, 2, fetches)
}

func TestHelpersAreNilSafe(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var out cachedMeetup
	found, err := GetJSON(ctx, ProfileKey(1), &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, ProfileKey(1), cachedMeetup{}, time.Minute))
	InvalidateProfile(ctx, 1)

	fetched := false
	require.NoError(t, Aside(ctx, ProfileKey(1), &out, time.Minute, func() error {
		fetched = true
		return nil
	}))
	assert.True(t, fetched)
}

func TestKeysDoNotCollideAcrossKinds(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	type cachedProfile struct {
		ID     uint   `json:"id"`
		UserID uint   `json:"user_id"`
		Bio    string `json:"bio"`
	}

	assert.NotEqual(t, ProfileKey(7), MeetupKey(7))

	require.NoError(t, SetJSON(ctx, MeetupKey(7), cachedMeetup{ID: 7, Title: "Sunrise hike"}, MeetupTTL))
	require.NoError(t, SetJSON(ctx, ProfileKey(7), cachedProfile{ID: 3, UserID: 7, Bio: "trail runner"}, ProfileTTL))

	// Each kind reads back only its own record.
	var profile cachedProfile
	found, err := GetJSON(ctx, ProfileKey(7), &profile)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint(7), profile.UserID)
	assert.Equal(t, "trail runner", profile.Bio)
}
