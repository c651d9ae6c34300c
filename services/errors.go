package services

import "errors"

var (
	ErrNoCachedIntake = errors.New("no cached nutrient data for this food today")
	ErrNoCachedSport  = errors.New("no cached data for this activity today")
	ErrEmailTaken     = errors.New("an account with this email already exists")
	ErrBadCredentials = errors.New("invalid email or password")
)
