package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash := HashPassword("parola123")
	assert.NotEqual(t, "parola123", hash)
	assert.True(t, CheckPasswordHash("parola123", hash))
	assert.False(t, CheckPasswordHash("parola124", hash))
}

func TestCalculateAge(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 30, CalculateAge(now.AddDate(-30, 0, -1)))
	// birthday not reached yet this year
	assert.Equal(t, 29, CalculateAge(now.AddDate(-30, 0, 1)))
	assert.Equal(t, 0, CalculateAge(now))
}
