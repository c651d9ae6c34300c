package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/AnaLarisa/nutriWave-api/config"
	"github.com/AnaLarisa/nutriWave-api/models"
	"github.com/AnaLarisa/nutriWave-api/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global DB handle at a fresh in-memory database,
// migrated and seeded like production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Nutrient{},
		&models.NutrientRequirement{},
		&models.NutrientIntake{},
		&models.FoodLog{},
		&models.SportLog{},
	))
	require.NoError(t, config.SeedNutrients(db))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })

	return db
}

func createTestUser(t *testing.T, sex string, age int) models.User {
	t.Helper()

	user := models.User{
		FirstName:    "Ana",
		LastName:     "Pop",
		Email:        fmt.Sprintf("%s@example.com", t.Name()),
		PasswordHash: utils.HashPassword("parola123"),
		Sex:          sex,
		BirthDate:    time.Now().AddDate(-age, 0, -1),
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func seedRequirements(t *testing.T, user models.User) {
	t.Helper()
	svc := NewRequirementService()
	require.NoError(t, svc.AddUserNutrientRequirements(user.ID, user.Sex, utils.CalculateAge(user.BirthDate)))
}
