package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName         string `gorm:"size:100;not null"`
	LastName          string `gorm:"size:100;not null"`
	Email             string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash      string `gorm:"size:255;not null"`
	Sex               string `gorm:"size:10;not null"`
	BirthDate         time.Time
	MedicalConditions string `gorm:"size:500"`
	MedicalReportURL  string `gorm:"size:500"`

	NutrientIntakes      []NutrientIntake      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	NutrientRequirements []NutrientRequirement `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
