package config

import (
	"fmt"
	"os"

	"github.com/AnaLarisa/nutriWave-api/models"
	"github.com/AnaLarisa/nutriWave-api/utils"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Nutrient{},
		&models.NutrientRequirement{},
		&models.NutrientIntake{},
		&models.FoodLog{},
		&models.SportLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := SeedNutrients(DB); err != nil {
		log.Fatalf("Nutrient seeding failed: %v", err)
	}
}

// SeedNutrients inserts the 34 catalog nutrients once, on an empty table.
func SeedNutrients(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Nutrient{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	nutrients := make([]models.Nutrient, 0, utils.NutrientCount)
	for id := uint(1); id <= utils.NutrientCount; id++ {
		nutrients = append(nutrients, models.Nutrient{
			ID:   id,
			Name: utils.NutrientName(id),
			Unit: utils.NutrientUnit(id),
		})
	}
	return db.Create(&nutrients).Error
}
