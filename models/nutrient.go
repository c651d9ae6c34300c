package models

import "time"

// Nutrient is reference data: one row per tracked nutrient, seeded once at
// startup and never mutated afterwards.
type Nutrient struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Unit string `gorm:"size:20;not null" json:"unit"`
}

// NutrientRequirement is a user's daily target for one nutrient.
type NutrientRequirement struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     uint    `gorm:"not null;index:idx_req_user_nutrient,unique" json:"user_id"`
	NutrientID uint    `gorm:"not null;index:idx_req_user_nutrient,unique" json:"nutrient_id"`
	Quantity   float64 `gorm:"not null" json:"quantity"`

	Nutrient Nutrient `gorm:"foreignKey:NutrientID" json:"nutrient"`
}

// NutrientIntake is how much of one nutrient a user has consumed on a given day.
type NutrientIntake struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	NutrientID uint      `gorm:"not null" json:"nutrient_id"`
	Quantity   float64   `gorm:"not null" json:"quantity"`
	Date       time.Time `gorm:"not null;index" json:"date"`

	Nutrient Nutrient `gorm:"foreignKey:NutrientID" json:"nutrient"`
}
