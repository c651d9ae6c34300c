package services

import (
	"errors"
	"strings"
	"time"

	"github.com/AnaLarisa/nutriWave-api/config"
	"github.com/AnaLarisa/nutriWave-api/models"
	"github.com/AnaLarisa/nutriWave-api/utils"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthService struct {
	requirements *RequirementService
	intakes      *IntakeService
}

func NewAuthService(requirements *RequirementService, intakes *IntakeService) *AuthService {
	return &AuthService{requirements: requirements, intakes: intakes}
}

type RegisterInput struct {
	FirstName         string    `json:"first_name" binding:"required"`
	LastName          string    `json:"last_name" binding:"required"`
	Email             string    `json:"email" binding:"required,email"`
	Password          string    `json:"password" binding:"required,min=8"`
	Sex               string    `json:"sex" binding:"required"`
	BirthDate         time.Time `json:"birth_date" binding:"required"`
	MedicalConditions string    `json:"medical_conditions"`
}

// Register creates the account and seeds its default nutrient requirements
// from the user's sex and age.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	sex, err := normalizeSex(input.Sex)
	if err != nil {
		return nil, err
	}

	var existing models.User
	err = config.DB.Where("email = ?", strings.ToLower(input.Email)).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             strings.ToLower(input.Email),
		PasswordHash:      utils.HashPassword(input.Password),
		Sex:               sex,
		BirthDate:         input.BirthDate,
		MedicalConditions: input.MedicalConditions,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	age := utils.CalculateAge(user.BirthDate)
	if err := s.requirements.AddUserNutrientRequirements(user.ID, user.Sex, age); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": user.ID}).Info("user registered")
	return &user, nil
}

// Login verifies credentials, makes sure today's intake rows exist and
// returns a signed token.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	err := config.DB.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrBadCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, ErrBadCredentials
	}

	if err := s.intakes.EnsureIntakeForToday(user.ID); err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// normalizeSex maps the accepted spellings onto the canonical "male"/"female".
func normalizeSex(sex string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(sex)) {
	case "m", "male", "masculin":
		return "male", nil
	case "f", "female", "feminin":
		return "female", nil
	}
	return "", errors.New("sex must be male or female")
}
