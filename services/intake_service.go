package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AnaLarisa/nutriWave-api/config"
	"github.com/AnaLarisa/nutriWave-api/models"
	"github.com/AnaLarisa/nutriWave-api/utils"

	"gorm.io/gorm"
)

// IntakeService tracks per-day consumed amounts against the user's
// requirements. Food additions come from the Nutritionix lookup and are
// cached so a later removal subtracts the exact same amounts.
type IntakeService struct {
	nutritionix *NutritionixService
	cache       *CacheService
	foodLogs    *FoodLogService
}

func NewIntakeService(nutritionix *NutritionixService, cache *CacheService, foodLogs *FoodLogService) *IntakeService {
	return &IntakeService{nutritionix: nutritionix, cache: cache, foodLogs: foodLogs}
}

// EnsureIntakeForToday creates today's zeroed intake rows on first use of
// the day, one per requirement row the user has.
func (s *IntakeService) EnsureIntakeForToday(userID uint) error {
	var count int64
	err := config.DB.Model(&models.NutrientIntake{}).
		Where("user_id = ? AND date = ?", userID, today()).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}

	var nutrientIDs []uint
	err = config.DB.Model(&models.NutrientRequirement{}).
		Where("user_id = ?", userID).
		Pluck("nutrient_id", &nutrientIDs).Error
	if err != nil {
		return err
	}

	intakes := make([]models.NutrientIntake, 0, len(nutrientIDs))
	for _, id := range nutrientIDs {
		intakes = append(intakes, models.NutrientIntake{
			UserID:     userID,
			NutrientID: id,
			Quantity:   0,
			Date:       today(),
		})
	}
	if len(intakes) == 0 {
		return nil
	}
	return config.DB.Create(&intakes).Error
}

func (s *IntakeService) GetIntakesForDate(userID uint, date string) ([]models.NutrientIntake, error) {
	day := today()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", date, err)
		}
		day = dayOf(parsed)
	}

	var intakes []models.NutrientIntake
	err := config.DB.Preload("Nutrient").
		Where("user_id = ? AND date = ?", userID, day).
		Order("nutrient_id").
		Find(&intakes).Error
	return intakes, err
}

// AddFoodIntake looks the description up, adds the nutrient amounts to
// today's intake rows, caches them for symmetric removal and writes a food
// log entry.
func (s *IntakeService) AddFoodIntake(ctx context.Context, userID uint, description, displayName string) error {
	totals, err := s.nutritionix.GetFoodNutrients(description)
	if err != nil {
		return err
	}

	if err := s.cache.SaveFoodNutrients(ctx, userID, description, totals); err != nil {
		return err
	}
	if err := s.foodLogs.AddFoodLog(userID, description, displayName); err != nil {
		return err
	}

	return s.applyIntakeDelta(userID, totals, false)
}

// RemoveFoodIntake undoes a same-day AddFoodIntake using the cached amounts.
func (s *IntakeService) RemoveFoodIntake(ctx context.Context, userID uint, description string) error {
	cached, err := s.cache.GetFoodNutrients(ctx, userID, description)
	if err != nil {
		return err
	}
	if cached == nil {
		return ErrNoCachedIntake
	}

	if err := s.foodLogs.DeleteFoodLogForToday(userID, description); err != nil {
		return err
	}
	if err := s.cache.RemoveFoodNutrients(ctx, userID, description); err != nil {
		return err
	}

	return s.applyIntakeDelta(userID, cached, true)
}

// applyIntakeDelta adds or subtracts nutrient amounts on today's rows.
// Subtraction floors at zero. All row updates commit together.
func (s *IntakeService) applyIntakeDelta(userID uint, amounts map[uint]float64, subtract bool) error {
	var intakes []models.NutrientIntake
	err := config.DB.
		Where("user_id = ? AND date = ?", userID, today()).
		Find(&intakes).Error
	if err != nil {
		return err
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		for i := range intakes {
			delta, ok := amounts[intakes[i].NutrientID]
			if !ok {
				continue
			}
			if subtract {
				intakes[i].Quantity -= delta
				if intakes[i].Quantity < 0 {
					intakes[i].Quantity = 0
				}
			} else {
				intakes[i].Quantity += delta
			}
			if err := tx.Save(&intakes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// NutrientStatus is the per-nutrient view the frontend renders: consumed
// against required, with catalog identity.
type NutrientStatus struct {
	NutrientID uint    `json:"nutrient_id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Intake     float64 `json:"intake"`
	Required   float64 `json:"required"`
}

// BuildNutrientStatusList joins intake rows with requirement rows by
// nutrient id, in catalog order.
func BuildNutrientStatusList(intakes []models.NutrientIntake, requirements []models.NutrientRequirement) []NutrientStatus {
	required := make(map[uint]float64, len(requirements))
	for _, r := range requirements {
		required[r.NutrientID] = r.Quantity
	}

	statuses := make([]NutrientStatus, 0, len(intakes))
	for _, intake := range intakes {
		statuses = append(statuses, NutrientStatus{
			NutrientID: intake.NutrientID,
			Name:       utils.NutrientName(intake.NutrientID),
			Unit:       utils.NutrientUnit(intake.NutrientID),
			Intake:     intake.Quantity,
			Required:   required[intake.NutrientID],
		})
	}
	return statuses
}
