// Command main runs the database seeder for MileMeet.
package main

import (
	"flag"
	"log"

	"milemeet/internal/config"
	"milemeet/internal/database"
	"milemeet/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numMeetups := flag.Int("meetups", 60, "Number of meetups to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d meetups, clean=%v\n", *numUsers, *numMeetups, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumMeetups:  *numMeetups,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
