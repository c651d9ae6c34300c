package controllers

import (
	"net/http"

	"github.com/AnaLarisa/nutriWave-api/services"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// DailyReport generates the intake-vs-requirement CSV for ?date=YYYY-MM-DD
// (today when omitted), archives it and streams it back.
func (rc *ReportController) DailyReport(c *gin.Context) {
	userID := c.GetUint("userID")
	date := c.Query("date")

	data, url, err := rc.Reports.GenerateDailyReport(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("X-Report-URL", url)
	c.Header("Content-Disposition", `attachment; filename="daily-intake-report.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
