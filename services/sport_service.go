package services

import (
	"context"
	"fmt"

	"github.com/AnaLarisa/nutriWave-api/config"
	"github.com/AnaLarisa/nutriWave-api/models"
	"github.com/AnaLarisa/nutriWave-api/utils"
)

// SportService records exercise and subtracts the burned calories from
// today's Energy intake row. Cached per activity so a removal restores the
// exact amount.
type SportService struct {
	nutritionix *NutritionixService
	cache       *CacheService
	sportLogs   *SportLogService
}

func NewSportService(nutritionix *NutritionixService, cache *CacheService, sportLogs *SportLogService) *SportService {
	return &SportService{nutritionix: nutritionix, cache: cache, sportLogs: sportLogs}
}

// AddSportIntake resolves the activity's calorie burn, logs it, caches it
// and lowers today's Energy intake by that amount, flooring at zero.
func (s *SportService) AddSportIntake(ctx context.Context, userID uint, description, displayName string) error {
	exercises, err := s.nutritionix.GetExerciseInfo(description)
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		return fmt.Errorf("no exercise information found for %q", description)
	}

	var calories float64
	for _, e := range exercises {
		calories += e.CaloriesBurned
	}

	info := SportUsefulData{Name: displayName, CaloriesBurned: calories}
	if err := s.cache.SaveSportInfo(ctx, userID, description, info); err != nil {
		return err
	}
	if err := s.sportLogs.AddSportLog(userID, description, calories); err != nil {
		return err
	}

	return s.adjustEnergyIntake(userID, calories, true)
}

// RemoveSportIntake undoes a same-day AddSportIntake using the cached burn.
func (s *SportService) RemoveSportIntake(ctx context.Context, userID uint, description string) error {
	cached, err := s.cache.GetSportInfo(ctx, userID, description)
	if err != nil {
		return err
	}
	if cached == nil {
		return ErrNoCachedSport
	}

	if err := s.sportLogs.DeleteSportLogForToday(userID, description); err != nil {
		return err
	}
	if err := s.cache.RemoveSportInfo(ctx, userID, description); err != nil {
		return err
	}

	return s.adjustEnergyIntake(userID, cached.CaloriesBurned, false)
}

func (s *SportService) adjustEnergyIntake(userID uint, calories float64, subtract bool) error {
	var intake models.NutrientIntake
	err := config.DB.
		Where("user_id = ? AND nutrient_id = ? AND date = ?", userID, utils.EnergyNutrientID, today()).
		First(&intake).Error
	if err != nil {
		return err
	}

	if subtract {
		intake.Quantity -= calories
		if intake.Quantity < 0 {
			intake.Quantity = 0
		}
	} else {
		intake.Quantity += calories
	}
	return config.DB.Save(&intake).Error
}
