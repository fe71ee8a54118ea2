// Command main runs the database seeder for NextStep Scholarships.
package main

import (
	"flag"
	"log"

	"nextstep/internal/config"
	"nextstep/internal/database"
	"nextstep/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numScholarships := flag.Int("scholarships", 30, "Number of scholarships to create")
	numApplications := flag.Int("applications", 100, "Number of applications to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d scholarships, %d applications, clean=%v\n",
		*numUsers, *numScholarships, *numApplications, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}

	scholarships, err := s.SeedScholarships(*numScholarships, users)
	if err != nil {
		log.Fatalf("Scholarship seeding failed: %v", err)
	}

	if err := s.SeedApplications(*numApplications, users, scholarships); err != nil {
		log.Fatalf("Application seeding failed: %v", err)
	}

	log.Println("Done. Database populated with development data.")
}
