package controllers

import (
	"net/http"
	"time"

	"github.com/AnaLarisa/nutriWave-api/services"

	"github.com/gin-gonic/gin"
)

type NutrientsController struct {
	Requirements *services.RequirementService
	Intakes      *services.IntakeService
	FoodLogs     *services.FoodLogService
}

func NewNutrientsController(req *services.RequirementService, intakes *services.IntakeService, foodLogs *services.FoodLogService) *NutrientsController {
	return &NutrientsController{Requirements: req, Intakes: intakes, FoodLogs: foodLogs}
}

func (nc *NutrientsController) GetRequirements(c *gin.Context) {
	userID := c.GetUint("userID")

	requirements, err := nc.Requirements.GetUserNutrientRequirements(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, requirements)
}

func (nc *NutrientsController) RestoreDefaults(c *gin.Context) {
	userID := c.GetUint("userID")

	if err := nc.Requirements.RestoreAllToDefault(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "nutrient requirements restored to defaults"})
}

// GetStatus returns today's (or ?date=YYYY-MM-DD's) intake joined with the
// requirement for each nutrient.
func (nc *NutrientsController) GetStatus(c *gin.Context) {
	userID := c.GetUint("userID")
	date := c.Query("date")

	intakes, err := nc.Intakes.GetIntakesForDate(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	requirements, err := nc.Requirements.GetUserNutrientRequirements(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, services.BuildNutrientStatusList(intakes, requirements))
}

type FoodInput struct {
	Description string `json:"description" binding:"required"`
	DisplayName string `json:"display_name"`
}

func (nc *NutrientsController) AddFood(c *gin.Context) {
	userID := c.GetUint("userID")

	var input FoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.DisplayName == "" {
		input.DisplayName = input.Description
	}

	if err := nc.Intakes.AddFoodIntake(c.Request.Context(), userID, input.Description, input.DisplayName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "food intake recorded"})
}

func (nc *NutrientsController) RemoveFood(c *gin.Context) {
	userID := c.GetUint("userID")

	var input FoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := nc.Intakes.RemoveFoodIntake(c.Request.Context(), userID, input.Description)
	if err != nil {
		if err == services.ErrNoCachedIntake {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "food intake removed"})
}

func (nc *NutrientsController) GetFoodLogs(c *gin.Context) {
	userID := c.GetUint("userID")

	start, err := parseDateParam(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	var end *time.Time
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		end = &parsed
	}

	logs, err := nc.FoodLogs.GetFoodLogsByDate(userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func parseDateParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}
