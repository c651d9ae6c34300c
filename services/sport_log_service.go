package services

import (
	"fmt"
	"time"

	"github.com/AnaLarisa/nutriWave-api/config"
	"github.com/AnaLarisa/nutriWave-api/models"
)

type SportLogService struct{}

func NewSportLogService() *SportLogService {
	return &SportLogService{}
}

func (s *SportLogService) AddSportLog(userID uint, description string, caloriesBurned float64) error {
	sportLog := models.SportLog{
		UserID:         userID,
		Description:    description,
		CaloriesBurned: caloriesBurned,
		Date:           today(),
	}
	return config.DB.Create(&sportLog).Error
}

func (s *SportLogService) GetSportLogs(userID uint, date time.Time) ([]models.SportLog, error) {
	var logs []models.SportLog
	err := config.DB.
		Where("user_id = ? AND date = ?", userID, dayOf(date)).
		Find(&logs).Error
	return logs, err
}

func (s *SportLogService) DeleteSportLogForToday(userID uint, description string) error {
	result := config.DB.
		Where("user_id = ? AND description = ? AND date = ?", userID, description, today()).
		Limit(1).
		Delete(&models.SportLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no sport log found for %q today", description)
	}
	return nil
}
