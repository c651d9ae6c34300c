package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AnaLarisa/nutriWave-api/config"
	"github.com/AnaLarisa/nutriWave-api/models"
	"github.com/AnaLarisa/nutriWave-api/utils"

	log "github.com/sirupsen/logrus"
)

// ModelClient is the external vision/text model consumed by the pipeline.
type ModelClient interface {
	Message(ctx context.Context, prompt string, maxTokens int) (string, error)
	MessageWithImage(ctx context.Context, imagePath, prompt string, maxTokens int) (string, error)
}

// RequirementStore is the slice of RequirementService the pipeline needs.
type RequirementStore interface {
	UpdateNutrientRequirementsInBulk(userID uint, changes []models.NutrientChange) error
}

// MedicalPdfService turns an uploaded lab-results PDF into nutrient
// requirement adjustments: rasterize pages, redact personal information,
// extract test rows through the vision model, flag abnormal values and apply
// the derived dosage directives.
type MedicalPdfService struct {
	model        ModelClient
	anonymizer   *AnonymizerService
	requirements RequirementStore
	hub          *ProgressHub

	// overridable in tests
	convertPDF   func(pdfBytes []byte) ([]string, error)
	uploadReport func(pdfBytes []byte, filename string, userID uint)
}

func NewMedicalPdfService(model ModelClient, anonymizer *AnonymizerService, requirements RequirementStore, hub *ProgressHub) *MedicalPdfService {
	s := &MedicalPdfService{
		model:        model,
		anonymizer:   anonymizer,
		requirements: requirements,
		hub:          hub,
		convertPDF:   utils.ConvertPDFToImages,
	}
	s.uploadReport = s.storeOriginalDocument
	return s
}

// ProcessDocument runs the whole ingestion pipeline for one document. The
// returned result always reports success or a human-readable error; every
// temporary image artifact is deleted before returning, on every path.
func (s *MedicalPdfService) ProcessDocument(ctx context.Context, pdfBytes []byte, filename string, userID uint) models.ProcessingResult {
	var result models.ProcessingResult
	var tempFiles []string
	defer func() { cleanupTempFiles(tempFiles) }()

	log.WithFields(log.Fields{"filename": filename, "user_id": userID}).Info("processing medical document")

	s.notify(userID, "converting")
	imageFiles, err := s.convertPDF(pdfBytes)
	tempFiles = append(tempFiles, imageFiles...)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to convert document to images: %v", err)
		return result
	}

	s.notify(userID, "anonymizing")
	finalImages, anonymizedFiles, err := s.anonymizeImages(ctx, imageFiles)
	tempFiles = append(tempFiles, anonymizedFiles...)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("cannot process document: %v", err)
		return result
	}
	result.AnonymizedImages = len(anonymizedFiles)

	s.notify(userID, "extracting")
	var allResults []models.TestResult
	for _, imagePath := range finalImages {
		rows := s.extractFromImage(ctx, imagePath)
		allResults = append(allResults, rows...)
		log.WithFields(log.Fields{"image": filepath.Base(imagePath), "rows": len(rows)}).Info("extraction finished")
	}

	if len(allResults) > 0 {
		s.notify(userID, "post-processing")
		allResults = s.postProcessResults(ctx, allResults)
	}

	var recommendations []models.NutrientChange
	if len(allResults) > 0 {
		s.notify(userID, "analyzing")
		recommendations = s.analyzeAbnormalValues(ctx, allResults)
	}

	s.notify(userID, "applying")
	if err := s.requirements.UpdateNutrientRequirementsInBulk(userID, recommendations); err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to apply nutrient recommendations: %v", err)
		return result
	}

	if s.uploadReport != nil {
		s.uploadReport(pdfBytes, filename, userID)
	}

	result.TestResults = allResults
	result.NutrientRecommendations = recommendations
	result.TotalResults = len(allResults)
	result.Success = true
	s.notify(userID, "done")

	log.WithFields(log.Fields{
		"results":         result.TotalResults,
		"recommendations": len(recommendations),
	}).Info("medical document processed")

	return result
}

// anonymizeImages runs the gate over every page image in order. A hard
// failure aborts the whole run; soft failures and unsupported providers let
// the unmodified image through.
func (s *MedicalPdfService) anonymizeImages(ctx context.Context, imageFiles []string) (finalImages, anonymizedFiles []string, err error) {
	for _, imagePath := range imageFiles {
		outcome := s.anonymizer.AnonymizeImage(ctx, imagePath)

		switch outcome.Status {
		case AnonymizationHardFailure:
			return nil, anonymizedFiles, outcome.Err
		default:
			if outcome.Result.WasAnonymized {
				finalImages = append(finalImages, outcome.Result.ImagePath)
				anonymizedFiles = append(anonymizedFiles, outcome.Result.ImagePath)
			} else {
				finalImages = append(finalImages, imagePath)
			}
		}
	}
	return finalImages, anonymizedFiles, nil
}

// extractFromImage asks the vision model for the test rows on one page.
// The model client retries overloads internally; any remaining error
// abandons just this image.
func (s *MedicalPdfService) extractFromImage(ctx context.Context, imagePath string) []models.TestResult {
	text, err := s.model.MessageWithImage(ctx, imagePath, extractionPrompt, 4000)
	if err != nil {
		log.WithError(err).WithField("image", filepath.Base(imagePath)).Warn("extraction failed, skipping image")
		return nil
	}
	return utils.ParseTestResults(text)
}

// postProcessResults asks the model to standardize and deduplicate the raw
// rows in one consolidating call. On any failure the raw rows are kept.
func (s *MedicalPdfService) postProcessResults(ctx context.Context, rawData []models.TestResult) []models.TestResult {
	serialized, err := json.MarshalIndent(rawData, "", "  ")
	if err != nil {
		return rawData
	}

	text, err := s.model.Message(ctx, fmt.Sprintf(postProcessPromptFormat, string(serialized)), 4000)
	if err != nil {
		log.WithError(err).Warn("post-processing failed, using original data")
		return rawData
	}

	processed := utils.ParseTestResults(text)
	if len(processed) == 0 {
		log.Warn("post-processing returned no rows, using original data")
		return rawData
	}
	return processed
}

// analyzeAbnormalValues filters the rows to those outside their reference
// range and asks the model for dosage-change directives constrained to the
// catalog names. Exhausted retries yield an empty change set, never an error.
func (s *MedicalPdfService) analyzeAbnormalValues(ctx context.Context, testResults []models.TestResult) []models.NutrientChange {
	var abnormal []models.TestResult
	for _, r := range testResults {
		if isAbnormalValue(r) {
			abnormal = append(abnormal, r)
		}
	}
	if len(abnormal) == 0 {
		return nil
	}

	serialized, err := json.MarshalIndent(abnormal, "", "  ")
	if err != nil {
		return nil
	}

	prompt := fmt.Sprintf(analysisPromptFormat, string(serialized), strings.Join(utils.NutrientNames(), ", "))
	text, err := s.model.Message(ctx, prompt, 3000)
	if err != nil {
		log.WithError(err).Warn("nutrient analysis failed, no recommendations applied")
		return nil
	}

	parsed := utils.ParseNutrientChanges(text)
	valid := make([]models.NutrientChange, 0, len(parsed))
	for _, c := range parsed {
		if c.DBID != nil {
			valid = append(valid, c)
		}
	}

	log.WithFields(log.Fields{"abnormal": len(abnormal), "directives": len(valid)}).Info("abnormal values analyzed")
	return valid
}

// isAbnormalValue reports whether a test value falls outside its reference
// range. Ranges come in three shapes: "<X", ">X" and "A-B". Anything that
// does not parse cleanly is treated as normal.
func isAbnormalValue(result models.TestResult) bool {
	if result.Range == "" || result.Value == "" {
		return false
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(result.Value), 64)
	if err != nil {
		return false
	}

	cleanRange := strings.NewReplacer("[", "", "]", "", " ", "").Replace(result.Range)
	cleanRange = strings.TrimSpace(cleanRange)

	if rest, ok := strings.CutPrefix(cleanRange, "<"); ok {
		upper, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return false
		}
		return value >= upper
	}
	if rest, ok := strings.CutPrefix(cleanRange, ">"); ok {
		lower, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return false
		}
		return value <= lower
	}

	parts := strings.Split(cleanRange, "-")
	if len(parts) != 2 {
		return false
	}
	min, errMin := strconv.ParseFloat(parts[0], 64)
	max, errMax := strconv.ParseFloat(parts[1], 64)
	if errMin != nil || errMax != nil {
		return false
	}
	return value < min || value > max
}

// storeOriginalDocument keeps the uploaded PDF in S3 and records its URL on
// the user row. Failures only log; the processing result is unaffected.
func (s *MedicalPdfService) storeOriginalDocument(pdfBytes []byte, filename string, userID uint) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	url, err := utils.UploadReport(pdfBytes, base, ".pdf", "application/pdf")
	if err != nil {
		log.WithError(err).Warn("failed to store original medical document")
		return
	}
	if err := saveMedicalReportURL(userID, url); err != nil {
		log.WithError(err).Warn("failed to record medical report url")
	}
}

func saveMedicalReportURL(userID uint, url string) error {
	return config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("medical_report_url", url).Error
}

func (s *MedicalPdfService) notify(userID uint, stage string) {
	if s.hub != nil {
		s.hub.BroadcastProgress(userID, stage)
	}
}

func cleanupTempFiles(tempFiles []string) {
	for _, file := range tempFiles {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			log.WithError(err).WithField("file", file).Warn("could not delete temp file")
		}
	}
}

const extractionPrompt = `Analyze this medical test results page and extract ONLY the test data from any tables.

Return the data as a valid JSON array where each test result follows this exact format:
{
  "test": "test name",
  "value": "measured value",
  "unit": "unit of measurement",
  "range": "reference range"
}

Important rules:
- Extract ONLY test results from tables (ignore headers, patient info, dates, etc.)
- If a value has no unit, use an empty string for "unit"
- If there's no reference range, use an empty string for "range"
- Return an empty array [] if no test tables are found
- Ensure the response is valid JSON that can be parsed`

const postProcessPromptFormat = `The parsing of a PDF medical results table resulted in this JSON data. Please review and correct this data to ensure:

1. All test names are properly formatted and standardized
2. All values are clean and properly formatted numbers (remove any extra text)
3. All units are consistent and properly formatted
4. All ranges are properly formatted and consistent
5. Remove any duplicate entries
6. Fix any obvious parsing errors or inconsistencies

Here's the raw extracted data:
%s

Rules:
- Keep the same 4-field structure (test, value, unit, range)
- KEEP ALL TEST NAMES IN ROMANIAN - do not translate to English
- Clean numeric values (remove extra text, keep only the number)
- Standardize units (use common medical abbreviations)
- Format ranges consistently
- If a test result is qualitative (like "Negativ"), keep the descriptive value in Romanian
- Return valid JSON only, no explanation text`

const analysisPromptFormat = `Analyze these abnormal medical test results and provide specific nutrient recommendations to help normalize the values.

Abnormal test results:
%s

You must ONLY use these exact nutrient names in your response:
%s

For each abnormal value, determine what nutrients from the above list could help improve it. Return a JSON array in this exact format:
[
  {
    "nutrient": "exact nutrient name from the list above",
    "dosage_change": "+" or "-"
  }
]

IMPORTANT RULES:
- ONLY use the exact nutrient names provided above - no variations or abbreviations
- ONLY include nutrients that need dosage changes ("+" for increase, "-" for decrease)
- DO NOT include nutrients that should be maintained at current levels
- If a test value suggests a nutrient need that's not in the approved list, skip it
- Focus on direct relationships between test results and nutrients
- Return valid JSON only, no explanation text
- Return empty array [] if no approved nutrients need dosage changes`
