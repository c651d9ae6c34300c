package services

import (
	"errors"
	"fmt"

	"github.com/AnaLarisa/nutriWave-api/config"
	"github.com/AnaLarisa/nutriWave-api/models"
	"github.com/AnaLarisa/nutriWave-api/utils"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RequirementService owns the per-user daily nutrient requirement rows.
type RequirementService struct{}

func NewRequirementService() *RequirementService {
	return &RequirementService{}
}

// AddUserNutrientRequirements bulk-creates one requirement row per catalog
// nutrient using the EFSA defaults for the user's sex and age. Called once
// at registration; callers must not call it twice for the same user.
func (s *RequirementService) AddUserNutrientRequirements(userID uint, sex string, age int) error {
	requirements := make([]models.NutrientRequirement, 0, utils.NutrientCount)
	for id := uint(1); id <= utils.NutrientCount; id++ {
		requirements = append(requirements, models.NutrientRequirement{
			UserID:     userID,
			NutrientID: id,
			Quantity:   utils.RecommendedQuantity(id, sex, age),
		})
	}
	return config.DB.Create(&requirements).Error
}

// GetUserNutrientRequirements returns the user's requirement rows with their
// nutrient reference data preloaded.
func (s *RequirementService) GetUserNutrientRequirements(userID uint) ([]models.NutrientRequirement, error) {
	var requirements []models.NutrientRequirement
	err := config.DB.
		Preload("Nutrient").
		Where("user_id = ?", userID).
		Order("nutrient_id").
		Find(&requirements).Error
	return requirements, err
}

// RestoreAllToDefault recomputes every requirement row for the user from the
// default formula. The user is fetched once for sex and birth date.
func (s *RequirementService) RestoreAllToDefault(userID uint) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no user found for id %d", userID)
		}
		return err
	}

	var requirements []models.NutrientRequirement
	if err := config.DB.Where("user_id = ?", userID).Find(&requirements).Error; err != nil {
		return err
	}
	if len(requirements) == 0 {
		return fmt.Errorf("no nutrient requirements found for user %d", userID)
	}

	age := utils.CalculateAge(user.BirthDate)

	return config.DB.Transaction(func(tx *gorm.DB) error {
		for i := range requirements {
			requirements[i].Quantity = utils.RecommendedQuantity(requirements[i].NutrientID, user.Sex, age)
			if err := tx.Save(&requirements[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateNutrientRequirementsInBulk applies dosage-change directives to the
// user's requirement rows. Directives without a resolved catalog id, and
// directives targeting nutrients the user has no row for, are skipped. New
// quantities are nudged by the per-nutrient adjustment percentage and
// clamped to the safety bounds. All updates commit in one transaction.
func (s *RequirementService) UpdateNutrientRequirementsInBulk(userID uint, changes []models.NutrientChange) error {
	validChanges := make([]models.NutrientChange, 0, len(changes))
	nutrientIDs := make([]uint, 0, len(changes))
	for _, c := range changes {
		if c.DBID == nil {
			continue
		}
		validChanges = append(validChanges, c)
		nutrientIDs = append(nutrientIDs, *c.DBID)
	}
	if len(validChanges) == 0 {
		return nil
	}

	var requirements []models.NutrientRequirement
	err := config.DB.
		Where("user_id = ? AND nutrient_id IN ?", userID, nutrientIDs).
		Find(&requirements).Error
	if err != nil {
		return err
	}

	byNutrient := make(map[uint]*models.NutrientRequirement, len(requirements))
	for i := range requirements {
		byNutrient[requirements[i].NutrientID] = &requirements[i]
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		for _, change := range validChanges {
			requirement, ok := byNutrient[*change.DBID]
			if !ok {
				continue
			}

			pct := utils.AdjustmentPercentage(*change.DBID)
			newQuantity := requirement.Quantity * (1 - pct)
			if change.ShouldIncrease() {
				newQuantity = requirement.Quantity * (1 + pct)
			}

			requirement.Quantity = utils.ClampToSafetyBounds(newQuantity, *change.DBID)
			if err := tx.Save(requirement).Error; err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"user_id":  userID,
				"nutrient": change.Nutrient,
				"quantity": requirement.Quantity,
			}).Info("nutrient requirement adjusted")
		}
		return nil
	})
}
