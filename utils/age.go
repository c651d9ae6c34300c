package utils

import "time"

// CalculateAge returns whole years since birthDate, counting a year only
// once the birthday has passed.
func CalculateAge(birthDate time.Time) int {
	today := time.Now()
	age := today.Year() - birthDate.Year()
	if birthDate.AddDate(age, 0, 0).After(today) {
		age--
	}
	return age
}
