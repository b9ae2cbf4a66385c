package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rollbook/internal/config"
	"rollbook/internal/db"
	"rollbook/internal/model"
	"rollbook/internal/repository"
)

const (
	demoEmail    = "demo@rollbook.local"
	demoPassword = "demo-password"
	demoName     = "Demo Teacher"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Student{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	studentRepo := repository.NewStudentRepository(gormDB)

	owner, err := ensureDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Demo user ready: %s (id=%d)", owner.Email, owner.ID)

	created, skipped, err := seedStudents(ctx, studentRepo, owner.ID, sampleStudents())
	if err != nil {
		log.Fatalf("Failed to seed students: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New students created: %d", created)
	log.Printf("  - Existing roll numbers skipped: %d", skipped)
}

// ensureDemoUser finds or registers the demo account that owns the seeded
// records.
func ensureDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         demoName,
		Email:        demoEmail,
		PasswordHash: string(hashed),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// seedStudents inserts sample records, skipping roll numbers already taken.
func seedStudents(ctx context.Context, repo repository.StudentRepository, ownerID uint, students []model.Student) (created int, skipped int, err error) {
	for _, student := range students {
		existing, err := repo.FindByRollNumber(ctx, student.RollNumber)
		if err != nil {
			return created, skipped, err
		}
		if existing != nil {
			skipped++
			continue
		}

		student.CreatedBy = ownerID
		if err := repo.Create(ctx, &student); err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}

func sampleStudents() []model.Student {
	return []model.Student{
		{
			RollNumber:  "R100",
			FirstName:   "Ann",
			LastName:    "Lee",
			Email:       "ann.lee@example.com",
			Phone:       "555-0100",
			DateOfBirth: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
			Gender:      model.GenderFemale,
			Address:     "1 Orchard Rd",
			Class:       "10A",
			CGPA:        decimal.NewFromFloat(3.6),
			Status:      model.StudentStatusActive,
		},
		{
			RollNumber:  "R101",
			FirstName:   "Ben",
			LastName:    "Ortiz",
			Email:       "ben.ortiz@example.com",
			Phone:       "555-0101",
			DateOfBirth: time.Date(1999, time.June, 12, 0, 0, 0, 0, time.UTC),
			Gender:      model.GenderMale,
			Address:     "22 Hill St",
			Class:       "10A",
			CGPA:        decimal.NewFromFloat(2.9),
			Status:      model.StudentStatusActive,
		},
		{
			RollNumber:  "R102",
			FirstName:   "Chloe",
			LastName:    "Nguyen",
			Email:       "chloe.nguyen@example.com",
			Phone:       "555-0102",
			DateOfBirth: time.Date(1998, time.March, 23, 0, 0, 0, 0, time.UTC),
			Gender:      model.GenderFemale,
			Address:     "7 Lake View",
			Class:       "12B",
			CGPA:        decimal.NewFromFloat(3.9),
			Status:      model.StudentStatusGraduated,
		},
		{
			RollNumber:  "R103",
			FirstName:   "Dev",
			LastName:    "Patel",
			Email:       "dev.patel@example.com",
			Phone:       "555-0103",
			DateOfBirth: time.Date(2001, time.November, 5, 0, 0, 0, 0, time.UTC),
			Gender:      model.GenderOther,
			Address:     "90 Elm Ave",
			Class:       "11C",
			Status:      model.StudentStatusInactive,
		},
	}
}
