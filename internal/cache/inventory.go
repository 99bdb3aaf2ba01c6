package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix = "profile:%d"
	MeetupKeyPrefix  = "meetup:%d"
)

const (
	ProfileTTL = 5 * time.Minute
	MeetupTTL  = 2 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func MeetupKey(meetupID uint) string {
	return fmt.Sprintf(MeetupKeyPrefix, meetupID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}

func InvalidateMeetup(ctx context.Context, meetupID uint) {
	Invalidate(ctx, MeetupKey(meetupID))
}
