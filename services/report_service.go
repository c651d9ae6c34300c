package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/AnaLarisa/nutriWave-api/models"
	"github.com/AnaLarisa/nutriWave-api/utils"
)

// ReportService exports a day's intake against the user's requirements as
// CSV and archives it in S3.
type ReportService struct {
	requirements *RequirementService
	intakes      *IntakeService

	uploadReport func(data []byte, filenamePrefix, ext, contentType string) (string, error)
}

func NewReportService(requirements *RequirementService, intakes *IntakeService) *ReportService {
	return &ReportService{
		requirements: requirements,
		intakes:      intakes,
		uploadReport: utils.UploadReport,
	}
}

// GenerateDailyReport builds the CSV for the given date, uploads it and
// returns both the file contents and the archive URL.
func (s *ReportService) GenerateDailyReport(userID uint, date string) ([]byte, string, error) {
	requirements, err := s.requirements.GetUserNutrientRequirements(userID)
	if err != nil {
		return nil, "", err
	}
	intakes, err := s.intakes.GetIntakesForDate(userID, date)
	if err != nil {
		return nil, "", err
	}

	data, err := buildIntakeCSV(date, intakes, requirements)
	if err != nil {
		return nil, "", err
	}

	prefix := fmt.Sprintf("intake-report-%d", userID)
	url, err := s.uploadReport(data, prefix, ".csv", "text/csv")
	if err != nil {
		return nil, "", err
	}
	return data, url, nil
}

func buildIntakeCSV(date string, intakes []models.NutrientIntake, requirements []models.NutrientRequirement) ([]byte, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"date", "nutrient", "unit", "intake", "required", "coverage_pct"}); err != nil {
		return nil, err
	}
	for _, row := range BuildNutrientStatusList(intakes, requirements) {
		coverage := 0.0
		if row.Required > 0 {
			coverage = row.Intake / row.Required * 100
		}
		record := []string{
			date,
			row.Name,
			row.Unit,
			strconv.FormatFloat(row.Intake, 'f', 2, 64),
			strconv.FormatFloat(row.Required, 'f', 2, 64),
			strconv.FormatFloat(coverage, 'f', 1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
