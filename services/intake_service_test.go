package services

import (
	"testing"

	"github.com/AnaLarisa/nutriWave-api/config"
	"github.com/AnaLarisa/nutriWave-api/models"
	"github.com/AnaLarisa/nutriWave-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntakeForTest() *IntakeService {
	return NewIntakeService(nil, nil, nil)
}

func TestEnsureIntakeForTodayCreatesRowsOnce(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "female", 28)
	seedRequirements(t, user)

	svc := newIntakeForTest()
	require.NoError(t, svc.EnsureIntakeForToday(user.ID))

	intakes, err := svc.GetIntakesForDate(user.ID, "")
	require.NoError(t, err)
	require.Len(t, intakes, utils.NutrientCount)
	for _, intake := range intakes {
		assert.Zero(t, intake.Quantity)
	}

	// second login on the same day must not duplicate rows
	require.NoError(t, svc.EnsureIntakeForToday(user.ID))
	var count int64
	require.NoError(t, config.DB.Model(&models.NutrientIntake{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(utils.NutrientCount), count)
}

func TestApplyIntakeDeltaAddAndSubtract(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "male", 35)
	seedRequirements(t, user)

	svc := newIntakeForTest()
	require.NoError(t, svc.EnsureIntakeForToday(user.ID))

	ironID := *utils.ResolveNutrientID("Iron")
	amounts := map[uint]float64{utils.EnergyNutrientID: 450, ironID: 2.5}

	require.NoError(t, svc.applyIntakeDelta(user.ID, amounts, false))
	intakes, err := svc.GetIntakesForDate(user.ID, "")
	require.NoError(t, err)
	byID := intakesByNutrient(intakes)
	assert.Equal(t, 450.0, byID[utils.EnergyNutrientID])
	assert.Equal(t, 2.5, byID[ironID])

	require.NoError(t, svc.applyIntakeDelta(user.ID, amounts, true))
	intakes, err = svc.GetIntakesForDate(user.ID, "")
	require.NoError(t, err)
	byID = intakesByNutrient(intakes)
	assert.Zero(t, byID[utils.EnergyNutrientID])
	assert.Zero(t, byID[ironID])
}

func TestApplyIntakeDeltaFloorsAtZero(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "male", 35)
	seedRequirements(t, user)

	svc := newIntakeForTest()
	require.NoError(t, svc.EnsureIntakeForToday(user.ID))

	require.NoError(t, svc.applyIntakeDelta(user.ID, map[uint]float64{utils.EnergyNutrientID: 100}, false))
	require.NoError(t, svc.applyIntakeDelta(user.ID, map[uint]float64{utils.EnergyNutrientID: 250}, true))

	intakes, err := svc.GetIntakesForDate(user.ID, "")
	require.NoError(t, err)
	assert.Zero(t, intakesByNutrient(intakes)[utils.EnergyNutrientID])
}

func TestGetIntakesForDateRejectsBadDate(t *testing.T) {
	setupTestDB(t)
	svc := newIntakeForTest()
	_, err := svc.GetIntakesForDate(1, "29-08-2026")
	assert.ErrorContains(t, err, "invalid date")
}

func TestBuildNutrientStatusList(t *testing.T) {
	ironID := *utils.ResolveNutrientID("Iron")
	intakes := []models.NutrientIntake{{UserID: 1, NutrientID: ironID, Quantity: 5}}
	requirements := []models.NutrientRequirement{{UserID: 1, NutrientID: ironID, Quantity: 18}}

	statuses := BuildNutrientStatusList(intakes, requirements)
	require.Len(t, statuses, 1)
	assert.Equal(t, "Iron", statuses[0].Name)
	assert.Equal(t, "mg", statuses[0].Unit)
	assert.Equal(t, 5.0, statuses[0].Intake)
	assert.Equal(t, 18.0, statuses[0].Required)
}

func intakesByNutrient(intakes []models.NutrientIntake) map[uint]float64 {
	m := make(map[uint]float64, len(intakes))
	for _, intake := range intakes {
		m[intake.NutrientID] = intake.Quantity
	}
	return m
}
