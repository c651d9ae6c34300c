package routes

import (
	"github.com/AnaLarisa/nutriWave-api/config"
	"github.com/AnaLarisa/nutriWave-api/controllers"
	"github.com/AnaLarisa/nutriWave-api/middlewares"
	"github.com/AnaLarisa/nutriWave-api/services"
	"github.com/AnaLarisa/nutriWave-api/utils"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	hub := services.NewProgressHub()

	requirementSvc := services.NewRequirementService()
	nutritionixSvc := services.NewNutritionixService()
	cacheSvc := services.NewCacheService(config.Redis)
	foodLogSvc := services.NewFoodLogService()
	sportLogSvc := services.NewSportLogService()
	intakeSvc := services.NewIntakeService(nutritionixSvc, cacheSvc, foodLogSvc)
	sportSvc := services.NewSportService(nutritionixSvc, cacheSvc, sportLogSvc)
	authSvc := services.NewAuthService(requirementSvc, intakeSvc)
	reportSvc := services.NewReportService(requirementSvc, intakeSvc)

	claudeSvc := services.NewClaudeService()
	anonymizerSvc := services.NewAnonymizerService(utils.TextractOCR{})
	pdfSvc := services.NewMedicalPdfService(claudeSvc, anonymizerSvc, requirementSvc, hub)

	authCtrl := controllers.NewAuthController(authSvc)
	nutrientsCtrl := controllers.NewNutrientsController(requirementSvc, intakeSvc, foodLogSvc)
	medicalCtrl := controllers.NewMedicalController(pdfSvc)
	sportCtrl := controllers.NewSportController(sportSvc, sportLogSvc)
	reportCtrl := controllers.NewReportController(reportSvc)
	realtimeCtrl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
	}

	// Protected nutrient routes
	nutrients := r.Group("/nutrients")
	nutrients.Use(middlewares.AuthMiddleware())
	{
		nutrients.GET("/requirements", nutrientsCtrl.GetRequirements)
		nutrients.POST("/requirements/restore", nutrientsCtrl.RestoreDefaults)
		nutrients.GET("/status", nutrientsCtrl.GetStatus)
		nutrients.POST("/food", nutrientsCtrl.AddFood)
		nutrients.DELETE("/food", nutrientsCtrl.RemoveFood)
		nutrients.GET("/food/logs", nutrientsCtrl.GetFoodLogs)
	}

	sport := r.Group("/sport")
	sport.Use(middlewares.AuthMiddleware())
	{
		sport.POST("", sportCtrl.AddSport)
		sport.DELETE("", sportCtrl.RemoveSport)
		sport.GET("/logs", sportCtrl.GetSportLogs)
	}

	medical := r.Group("/medical")
	medical.Use(middlewares.AuthMiddleware())
	{
		medical.POST("/process-pdf", medicalCtrl.ProcessPdf)
	}

	reports := r.Group("/reports")
	reports.Use(middlewares.AuthMiddleware())
	{
		reports.GET("/daily", reportCtrl.DailyReport)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/progress", realtimeCtrl.ProgressWS)
	}

	return r
}
