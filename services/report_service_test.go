package services

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/AnaLarisa/nutriWave-api/models"
	"github.com/AnaLarisa/nutriWave-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIntakeCSV(t *testing.T) {
	ironID := *utils.ResolveNutrientID("Iron")
	intakes := []models.NutrientIntake{{UserID: 1, NutrientID: ironID, Quantity: 9}}
	requirements := []models.NutrientRequirement{{UserID: 1, NutrientID: ironID, Quantity: 18}}

	data, err := buildIntakeCSV("2026-08-29", intakes, requirements)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"date", "nutrient", "unit", "intake", "required", "coverage_pct"}, records[0])
	assert.Equal(t, []string{"2026-08-29", "Iron", "mg", "9.00", "18.00", "50.0"}, records[1])
}

func TestBuildIntakeCSVZeroRequirement(t *testing.T) {
	ironID := *utils.ResolveNutrientID("Iron")
	intakes := []models.NutrientIntake{{UserID: 1, NutrientID: ironID, Quantity: 9}}

	data, err := buildIntakeCSV("2026-08-29", intakes, nil)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0.0", records[1][5])
}

func TestGenerateDailyReport(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "female", 30)
	seedRequirements(t, user)

	intakeSvc := newIntakeForTest()
	require.NoError(t, intakeSvc.EnsureIntakeForToday(user.ID))

	svc := NewReportService(NewRequirementService(), intakeSvc)
	var uploaded []byte
	svc.uploadReport = func(data []byte, prefix, ext, contentType string) (string, error) {
		uploaded = data
		assert.Equal(t, ".csv", ext)
		assert.Equal(t, "text/csv", contentType)
		return "https://cdn.example.com/reports/test.csv", nil
	}

	data, url, err := svc.GenerateDailyReport(user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/reports/test.csv", url)
	assert.Equal(t, data, uploaded)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, utils.NutrientCount+1)
}
