package main

import (
	"log"
	"os"
	"time"

	"ai-nutricoach-be/internal/model"
	"ai-nutricoach-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

// Seeds a demo profile on a fresh 7-day trial for local development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	demo := &model.UserProfile{
		Id:                uuid.New(),
		Email:             "demo@nutricoach.app",
		FullName:          "Demo User",
		IsSubscribed:      false,
		TrialEndDate:      time.Now().AddDate(0, 0, 7),
		DailyUsageCounts:  datatypes.JSONMap{},
		WeeklyUsageCounts: datatypes.JSONMap{},
		PurchasedCredits:  datatypes.JSONMap{},
	}

	var existing model.UserProfile
	if err := db.Where("email = ?", demo.Email).First(&existing).Error; err == nil {
		log.Printf("Info: Demo profile already exists (%s), skipping", existing.Id)
		return
	}

	if err := db.Create(demo).Error; err != nil {
		log.Fatalf("Error: Failed to seed demo profile: %v", err)
	}

	log.Printf("✅ Success: Seeded demo profile %s (trial until %s)", demo.Id, demo.TrialEndDate.Format("2006-01-02"))
}
