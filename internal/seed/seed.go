// Package seed populates the database with realistic development data.
package seed

import (
	"fmt"
	"strconv"
	"time"

	"nextstep/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder generates fake records for local development and demos.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seeded data. Order matters only for readability;
// no foreign keys are enforced between these tables.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Review{},
		&models.Application{},
		&models.Scholarship{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

var subjectCategories = []string{"Agriculture", "Engineering", "Doctor"}
var scholarshipCategories = []string{"Full fund", "Partial", "Self-fund"}
var degrees = []string{"Diploma", "Bachelor", "Masters"}

// SeedUsers creates n accounts. The first is always an admin and the
// second a moderator so the dashboard routes have something to show.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		role := models.RoleUser
		switch i {
		case 0:
			role = models.RoleAdmin
		case 1:
			role = models.RoleModerator
		}
		users = append(users, models.User{
			Name:  gofakeit.Name(),
			Email: gofakeit.Email(),
			Image: gofakeit.ImageURL(200, 200),
			Role:  role,
		})
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seeding users: %w", err)
	}
	return users, nil
}

// SeedScholarships creates n listings posted by admin or moderator users.
func (s *Seeder) SeedScholarships(n int, users []models.User) ([]models.Scholarship, error) {
	posters := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == models.RoleAdmin || u.Role == models.RoleModerator {
			posters = append(posters, u)
		}
	}
	if len(posters) == 0 {
		return nil, fmt.Errorf("no admin or moderator users to post scholarships")
	}

	scholarships := make([]models.Scholarship, 0, n)
	for i := 0; i < n; i++ {
		poster := posters[gofakeit.Number(0, len(posters)-1)]
		postDate := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
		deadline := gofakeit.DateRange(time.Now(), time.Now().AddDate(1, 0, 0))

		scholarships = append(scholarships, models.Scholarship{
			ScholarshipName:     fmt.Sprintf("%s Scholarship", gofakeit.Company()),
			UniversityName:      fmt.Sprintf("%s University", gofakeit.City()),
			UniversityImage:     gofakeit.ImageURL(400, 300),
			UniversityCountry:   gofakeit.Country(),
			UniversityCity:      gofakeit.City(),
			WorldRank:           gofakeit.Number(1, 500),
			SubjectCategory:     subjectCategories[gofakeit.Number(0, len(subjectCategories)-1)],
			ScholarshipCategory: scholarshipCategories[gofakeit.Number(0, len(scholarshipCategories)-1)],
			Degree:              degrees[gofakeit.Number(0, len(degrees)-1)],
			TuitionFees:         gofakeit.Float64Range(0, 20000),
			ApplicationFees:     gofakeit.Float64Range(5, 150),
			ServiceCharge:       gofakeit.Float64Range(0, 50),
			ApplicationDeadline: deadline.Format("2006-01-02"),
			PostDate:            postDate,
			PostedUserEmail:     poster.Email,
			Stipend:             gofakeit.RandomString([]string{"", "Monthly stipend available", "Research stipend"}),
		})
	}
	if err := s.db.Create(&scholarships).Error; err != nil {
		return nil, fmt.Errorf("seeding scholarships: %w", err)
	}
	return scholarships, nil
}

// SeedApplications creates n applications from regular users against
// random listings, with reviews on roughly a third of them.
func (s *Seeder) SeedApplications(n int, users []models.User, scholarships []models.Scholarship) error {
	if len(users) == 0 || len(scholarships) == 0 {
		return fmt.Errorf("users and scholarships must be seeded first")
	}

	statuses := []string{
		models.StatusPending, models.StatusPending, models.StatusProcessing,
		models.StatusCompleted, models.StatusRejected,
	}

	// One review per (reviewer, scholarship) pair.
	reviewed := make(map[string]bool)

	for i := 0; i < n; i++ {
		applicant := users[gofakeit.Number(0, len(users)-1)]
		listing := scholarships[gofakeit.Number(0, len(scholarships)-1)]
		status := statuses[gofakeit.Number(0, len(statuses)-1)]

		app := models.Application{
			ScholarshipID:       strconv.FormatUint(uint64(listing.ID), 10),
			UserEmail:           applicant.Email,
			UserName:            applicant.Name,
			Phone:               gofakeit.Phone(),
			Photo:               gofakeit.ImageURL(200, 200),
			Address:             gofakeit.Address().Address,
			Gender:              gofakeit.Gender(),
			Degree:              listing.Degree,
			SSCResult:           fmt.Sprintf("%.2f", gofakeit.Float64Range(3, 5)),
			HSCResult:           fmt.Sprintf("%.2f", gofakeit.Float64Range(3, 5)),
			StudyGap:            gofakeit.RandomString([]string{"", "1 year", "2 years"}),
			UniversityName:      listing.UniversityName,
			ScholarshipCategory: listing.ScholarshipCategory,
			SubjectCategory:     listing.SubjectCategory,
			ApplicationFees:     listing.ApplicationFees,
			ServiceCharge:       listing.ServiceCharge,
			ApplicationDeadline: listing.ApplicationDeadline,
			AppliedDate:         gofakeit.DateRange(listing.PostDate, time.Now()),
			Status:              status,
		}
		if status == models.StatusRejected {
			app.Feedback = gofakeit.Sentence(8)
		}
		if err := s.db.Create(&app).Error; err != nil {
			return fmt.Errorf("seeding applications: %w", err)
		}

		// Completed applicants sometimes leave a review.
		pairKey := app.ScholarshipID + "|" + applicant.Email
		if status == models.StatusCompleted && !reviewed[pairKey] && gofakeit.Bool() {
			reviewed[pairKey] = true
			review := models.Review{
				ScholarshipID:  app.ScholarshipID,
				UniversityName: listing.UniversityName,
				ReviewerName:   applicant.Name,
				ReviewerImage:  applicant.Image,
				ReviewerEmail:  applicant.Email,
				Rating:         float64(gofakeit.Number(2, 10)) / 2,
				Comment:        gofakeit.Sentence(12),
				ReviewDate:     gofakeit.DateRange(app.AppliedDate, time.Now()),
			}
			if err := s.db.Create(&review).Error; err != nil {
				return fmt.Errorf("seeding reviews: %w", err)
			}
		}
	}
	return nil
}
