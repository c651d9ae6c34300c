package services

import (
	"fmt"
	"time"

	"github.com/AnaLarisa/nutriWave-api/config"
	"github.com/AnaLarisa/nutriWave-api/models"
)

type FoodLogService struct{}

func NewFoodLogService() *FoodLogService {
	return &FoodLogService{}
}

func (s *FoodLogService) AddFoodLog(userID uint, description, displayName string) error {
	foodLog := models.FoodLog{
		UserID:      userID,
		Description: description,
		DisplayName: displayName,
		Date:        today(),
	}
	return config.DB.Create(&foodLog).Error
}

// DeleteFoodLogForToday removes today's log entry matching the description.
// A missing entry is a caller-level not-found error.
func (s *FoodLogService) DeleteFoodLogForToday(userID uint, description string) error {
	result := config.DB.
		Where("user_id = ? AND description = ? AND date = ?", userID, description, today()).
		Limit(1).
		Delete(&models.FoodLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no food log found for %q today", description)
	}
	return nil
}

func (s *FoodLogService) GetFoodLogsByDate(userID uint, startDate time.Time, endDate *time.Time) ([]models.FoodLog, error) {
	var logs []models.FoodLog
	q := config.DB.Where("user_id = ?", userID)
	if endDate == nil {
		q = q.Where("date = ?", dayOf(startDate))
	} else {
		q = q.Where("date >= ? AND date <= ?", dayOf(startDate), dayOf(*endDate)).
			Order("date").Order("description")
	}
	err := q.Find(&logs).Error
	return logs, err
}

func today() time.Time {
	return dayOf(time.Now())
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
