package models

import "time"

type FoodLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Description string    `gorm:"not null" json:"description"`
	DisplayName string    `json:"display_name"`
	Date        time.Time `gorm:"not null" json:"date"`
}

type SportLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Description    string    `gorm:"not null" json:"description"`
	CaloriesBurned float64   `json:"calories_burned"`
	Date           time.Time `gorm:"not null" json:"date"`
}
