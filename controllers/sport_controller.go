package controllers

import (
	"net/http"

	"github.com/AnaLarisa/nutriWave-api/services"

	"github.com/gin-gonic/gin"
)

type SportController struct {
	Sport     *services.SportService
	SportLogs *services.SportLogService
}

func NewSportController(sport *services.SportService, logs *services.SportLogService) *SportController {
	return &SportController{Sport: sport, SportLogs: logs}
}

type SportInput struct {
	Description string `json:"description" binding:"required"`
	DisplayName string `json:"display_name"`
}

func (sc *SportController) AddSport(c *gin.Context) {
	userID := c.GetUint("userID")

	var input SportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.DisplayName == "" {
		input.DisplayName = input.Description
	}

	if err := sc.Sport.AddSportIntake(c.Request.Context(), userID, input.Description, input.DisplayName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity recorded"})
}

func (sc *SportController) RemoveSport(c *gin.Context) {
	userID := c.GetUint("userID")

	var input SportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := sc.Sport.RemoveSportIntake(c.Request.Context(), userID, input.Description)
	if err != nil {
		if err == services.ErrNoCachedSport {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity removed"})
}

func (sc *SportController) GetSportLogs(c *gin.Context) {
	userID := c.GetUint("userID")

	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	logs, err := sc.SportLogs.GetSportLogs(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}
