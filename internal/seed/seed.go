// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"milemeet/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumMeetups  int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d meetups...", opts.NumUsers, opts.NumMeetups)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d test users created", len(users))

	if len(users) == 0 {
		log.Println("🎉 Database seeding completed successfully!")
		return nil
	}

	meetups := make([]*models.Meetup, 0, opts.NumMeetups)
	for i := 0; i < opts.NumMeetups; i++ {
		organizer := users[f.rand.Intn(len(users))]
		meetup, err := f.CreateMeetup(organizer)
		if err != nil {
			return fmt.Errorf("failed to create meetups: %w", err)
		}
		meetups = append(meetups, meetup)
	}
	log.Printf("✓ %d meetups created", len(meetups))

	// A few participants and comments per meetup so list pages look lived-in.
	joins, comments := 0, 0
	for _, meetup := range meetups {
		for i := 0; i < f.rand.Intn(4); i++ {
			user := users[f.rand.Intn(len(users))]
			if err := f.JoinMeetup(user, meetup); err != nil {
				return fmt.Errorf("failed to create participants: %w", err)
			}
			joins++
		}
		for i := 0; i < f.rand.Intn(3); i++ {
			user := users[f.rand.Intn(len(users))]
			if _, err := f.CreateComment(user, meetup); err != nil {
				return fmt.Errorf("failed to create comments: %w", err)
			}
			comments++
		}
	}
	log.Printf("✓ %d participants and %d comments created", joins, comments)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, meetup_participants, locations, meetups, profiles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
