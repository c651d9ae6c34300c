package utils

import (
	"encoding/json"
	"strings"

	"github.com/AnaLarisa/nutriWave-api/models"

	log "github.com/sirupsen/logrus"
)

// CleanModelJSON pulls the JSON array out of free-form model output. Models
// routinely wrap the payload in code fences or surround it with prose, so we
// strip fence markers and slice between the first '[' and the last ']'.
func CleanModelJSON(responseText string) string {
	cleaned := strings.TrimSpace(responseText)

	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start != -1 && end != -1 && end > start {
		cleaned = cleaned[start : end+1]
	}

	return strings.TrimSpace(cleaned)
}

// ParseTestResults decodes model output into lab test rows. Malformed output
// yields an empty slice, never an error.
func ParseTestResults(responseText string) []models.TestResult {
	var results []models.TestResult
	if err := json.Unmarshal([]byte(CleanModelJSON(responseText)), &results); err != nil {
		log.WithError(err).Warn("could not parse test results from model output")
		return nil
	}
	return results
}

// ParseNutrientChanges decodes model output into dosage-change directives.
// Directives survive only with a dosage_change of exactly "+" or "-"; the
// nutrient name is resolved against the catalog, and unresolved directives
// keep a nil id so that later application drops them. Malformed output
// yields an empty slice.
func ParseNutrientChanges(responseText string) []models.NutrientChange {
	var raw []models.NutrientChange
	if err := json.Unmarshal([]byte(CleanModelJSON(responseText)), &raw); err != nil {
		log.WithError(err).Warn("could not parse nutrient recommendations from model output")
		return nil
	}

	changes := make([]models.NutrientChange, 0, len(raw))
	for _, c := range raw {
		if !c.ShouldIncrease() && !c.ShouldDecrease() {
			continue
		}
		c.DBID = ResolveNutrientID(c.Nutrient)
		changes = append(changes, c)
	}
	return changes
}
