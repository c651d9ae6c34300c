package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnaLarisa/nutriWave-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel answers extraction calls (image) and text calls (post-process,
// analysis) from canned responses.
type fakeModel struct {
	imageResponse string
	imageErr      error
	textResponses []string
	textErr       error
	textCalls     int
}

func (m *fakeModel) Message(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if m.textErr != nil {
		return "", m.textErr
	}
	i := m.textCalls
	if i >= len(m.textResponses) {
		i = len(m.textResponses) - 1
	}
	m.textCalls++
	return m.textResponses[i], nil
}

func (m *fakeModel) MessageWithImage(ctx context.Context, imagePath, prompt string, maxTokens int) (string, error) {
	return m.imageResponse, m.imageErr
}

type fakeRequirementStore struct {
	applied []models.NutrientChange
	err     error
}

func (s *fakeRequirementStore) UpdateNutrientRequirementsInBulk(userID uint, changes []models.NutrientChange) error {
	if s.err != nil {
		return s.err
	}
	s.applied = append(s.applied, changes...)
	return nil
}

func newPipelineForTest(t *testing.T, model ModelClient, ocr OCREngine, store RequirementStore, pages []string) *MedicalPdfService {
	t.Helper()
	svc := NewMedicalPdfService(model, NewAnonymizerService(ocr), store, nil)
	svc.convertPDF = func([]byte) ([]string, error) { return pages, nil }
	svc.uploadReport = nil
	return svc
}

func createTempPage(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "page_*.png")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

const extractedRows = `[
  {"test": "Fier seric", "value": "35", "unit": "µg/dL", "range": "50-170"},
  {"test": "Glucoza", "value": "90", "unit": "mg/dL", "range": "70-100"}
]`

func TestProcessDocumentHappyPath(t *testing.T) {
	page := createTempPage(t)
	model := &fakeModel{
		imageResponse: extractedRows,
		textResponses: []string{
			extractedRows, // post-processing echoes the rows back
			`[{"nutrient": "Iron", "dosage_change": "+"}]`,
		},
	}
	store := &fakeRequirementStore{}
	ocr := &scriptedOCR{responses: []string{"no identifiers here"}, errs: []error{nil}}

	svc := newPipelineForTest(t, model, ocr, store, []string{page})
	result := svc.ProcessDocument(context.Background(), []byte("%PDF-"), "analize.pdf", 7)

	require.True(t, result.Success)
	assert.Equal(t, 2, result.TotalResults)
	assert.Equal(t, 0, result.AnonymizedImages)
	require.Len(t, result.NutrientRecommendations, 1)
	assert.Equal(t, "Iron", result.NutrientRecommendations[0].Nutrient)
	require.Len(t, store.applied, 1)
	require.NotNil(t, store.applied[0].DBID)

	// temp page was cleaned up
	_, err := os.Stat(page)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessDocumentNoRowsIsStillSuccess(t *testing.T) {
	page := createTempPage(t)
	model := &fakeModel{imageResponse: "[]"}
	store := &fakeRequirementStore{}
	ocr := &scriptedOCR{responses: []string{"no identifiers"}, errs: []error{nil}}

	svc := newPipelineForTest(t, model, ocr, store, []string{page})
	result := svc.ProcessDocument(context.Background(), []byte("%PDF-"), "analize.pdf", 7)

	assert.True(t, result.Success)
	assert.Zero(t, result.TotalResults)
	assert.Empty(t, store.applied)
}

func TestProcessDocumentConversionFailure(t *testing.T) {
	svc := newPipelineForTest(t, &fakeModel{}, &scriptedOCR{responses: []string{""}, errs: []error{nil}}, &fakeRequirementStore{}, nil)
	svc.convertPDF = func([]byte) ([]string, error) { return nil, errors.New("not a pdf") }

	result := svc.ProcessDocument(context.Background(), []byte("junk"), "x.pdf", 7)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "failed to convert document to images")
}

func TestProcessDocumentHardAnonymizationFailureAborts(t *testing.T) {
	page := createTempPage(t)
	ocrErr := errors.New("ocr down")
	ocr := &scriptedOCR{
		responses: []string{"", "buletin de analize MEDLIFE"},
		errs:      []error{ocrErr, nil},
	}
	store := &fakeRequirementStore{}

	svc := newPipelineForTest(t, &fakeModel{}, ocr, store, []string{page})
	result := svc.ProcessDocument(context.Background(), []byte("%PDF-"), "analize.pdf", 7)

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "cannot process document")
	assert.Empty(t, store.applied)

	_, err := os.Stat(page)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessDocumentExtractionFailureSkipsImage(t *testing.T) {
	pageA := createTempPage(t)
	pageB := createTempPage(t)
	model := &fakeModel{imageErr: errors.New("model unavailable")}
	store := &fakeRequirementStore{}
	ocr := &scriptedOCR{responses: []string{"text"}, errs: []error{nil}}

	svc := newPipelineForTest(t, model, ocr, store, []string{pageA, pageB})
	result := svc.ProcessDocument(context.Background(), []byte("%PDF-"), "analize.pdf", 7)

	// both images failed extraction, which still counts as a clean run
	assert.True(t, result.Success)
	assert.Zero(t, result.TotalResults)
}

func TestProcessDocumentApplyFailure(t *testing.T) {
	page := createTempPage(t)
	model := &fakeModel{
		imageResponse: extractedRows,
		textResponses: []string{
			extractedRows,
			`[{"nutrient": "Iron", "dosage_change": "+"}]`,
		},
	}
	store := &fakeRequirementStore{err: errors.New("db down")}
	ocr := &scriptedOCR{responses: []string{"text"}, errs: []error{nil}}

	svc := newPipelineForTest(t, model, ocr, store, []string{page})
	result := svc.ProcessDocument(context.Background(), []byte("%PDF-"), "analize.pdf", 7)

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "failed to apply nutrient recommendations")
}

func TestPostProcessFallsBackToRawRows(t *testing.T) {
	raw := []models.TestResult{{Test: "Fier seric", Value: "35", Unit: "µg/dL", Range: "50-170"}}

	svc := newPipelineForTest(t, &fakeModel{textErr: errors.New("overloaded")}, nil, &fakeRequirementStore{}, nil)
	processed := svc.postProcessResults(context.Background(), raw)
	assert.Equal(t, raw, processed)

	svc = newPipelineForTest(t, &fakeModel{textResponses: []string{"not json"}}, nil, &fakeRequirementStore{}, nil)
	processed = svc.postProcessResults(context.Background(), raw)
	assert.Equal(t, raw, processed)
}

func TestIsAbnormalValue(t *testing.T) {
	tests := []struct {
		value string
		rng   string
		want  bool
	}{
		{"15", "12.0-15.5", false},
		{"16", "12.0-15.5", true},
		{"11", "12.0-15.5", true},
		{"25", "<20", true},
		{"19", "<20", false},
		{"3", ">5", true},
		{"7", ">5", false},
		{"15", "[12.0 - 15.5]", false},
		{"", "12.0-15.5", false},
		{"abc", "12.0-15.5", false},
		{"15", "", false},
		{"Negativ", "Negativ", false},
		{"15", "some-odd-range", false},
	}
	for _, tt := range tests {
		got := isAbnormalValue(models.TestResult{Value: tt.value, Range: tt.rng})
		assert.Equal(t, tt.want, got, "value %q range %q", tt.value, tt.rng)
	}
}

func TestAnalyzeAbnormalValuesFiltersUnresolvedNutrients(t *testing.T) {
	model := &fakeModel{
		textResponses: []string{`[
			{"nutrient": "Iron", "dosage_change": "+"},
			{"nutrient": "Unobtainium", "dosage_change": "+"}
		]`},
	}
	svc := newPipelineForTest(t, model, nil, &fakeRequirementStore{}, nil)

	changes := svc.analyzeAbnormalValues(context.Background(), []models.TestResult{
		{Test: "Fier seric", Value: "35", Range: "50-170"},
	})
	require.Len(t, changes, 1)
	assert.Equal(t, "Iron", changes[0].Nutrient)
	require.NotNil(t, changes[0].DBID)
}

func TestAnalyzeAbnormalValuesAllNormalSkipsModel(t *testing.T) {
	model := &fakeModel{textErr: errors.New("must not be called")}
	svc := newPipelineForTest(t, model, nil, &fakeRequirementStore{}, nil)

	changes := svc.analyzeAbnormalValues(context.Background(), []models.TestResult{
		{Test: "Glucoza", Value: "90", Range: "70-100"},
	})
	assert.Empty(t, changes)
	assert.Zero(t, model.textCalls)
}

func TestCleanupTempFilesIgnoresMissing(t *testing.T) {
	existing := createTempPage(t)
	cleanupTempFiles([]string{existing, filepath.Join(t.TempDir(), "never_created.png")})

	_, err := os.Stat(existing)
	assert.True(t, os.IsNotExist(err))
}
