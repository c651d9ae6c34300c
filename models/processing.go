package models

import "strings"

// TestResult is one lab test row extracted from a document page. It lives
// only for the duration of a single processing run.
type TestResult struct {
	Test  string `json:"test"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
	Range string `json:"range"`
}

// NutrientChange is a validated dosage-change directive. DBID is nil when the
// nutrient name did not resolve against the catalog; such changes are never
// applied.
type NutrientChange struct {
	Nutrient     string `json:"nutrient"`
	DosageChange string `json:"dosage_change"`
	DBID         *uint  `json:"db_id,omitempty"`
}

func (c NutrientChange) ShouldIncrease() bool {
	return strings.TrimSpace(c.DosageChange) == "+"
}

func (c NutrientChange) ShouldDecrease() bool {
	return strings.TrimSpace(c.DosageChange) == "-"
}

// AnonymizationResult reports what the anonymization gate decided for one
// page image.
type AnonymizationResult struct {
	ImagePath     string `json:"image_path"`
	WasAnonymized bool   `json:"was_anonymized"`
	Provider      string `json:"provider"`
}

// ProcessingResult is the top-level outcome of one document run.
type ProcessingResult struct {
	TestResults             []TestResult     `json:"test_results"`
	NutrientRecommendations []NutrientChange `json:"nutrient_recommendations"`
	TotalResults            int              `json:"total_results"`
	AnonymizedImages        int              `json:"anonymized_images"`
	Success                 bool             `json:"success"`
	ErrorMessage            string           `json:"error_message,omitempty"`
}
