package services

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnaLarisa/nutriWave-api/models"

	"github.com/fogleman/gg"
	log "github.com/sirupsen/logrus"
)

// OCREngine recognizes text on a page image.
type OCREngine interface {
	DetectText(ctx context.Context, imagePath string) (string, error)
}

// AnonymizationStatus is the gate's per-image verdict. Only HardFailure
// aborts a processing run: it means personal data was recognized on a
// document we know how to redact, but the redaction could not be produced.
type AnonymizationStatus int

const (
	AnonymizationOk AnonymizationStatus = iota
	AnonymizationSoftFailure
	AnonymizationHardFailure
)

// AnonymizationOutcome pairs the status with the per-image result details.
type AnonymizationOutcome struct {
	Status AnonymizationStatus
	Result models.AnonymizationResult
	Err    error
}

// labProvider maps a known laboratory to the pixel height of its letterhead,
// which is where patient identifiers are printed on their result sheets.
type labProvider struct {
	Name       string
	HeaderPx   int
	TextTokens []string
}

var knownProviders = []labProvider{
	{Name: "Medlife", HeaderPx: 1350, TextTokens: []string{"medlife"}},
	{Name: "Regina Maria", HeaderPx: 1100, TextTokens: []string{"regina maria", "reginamaria"}},
}

// Personal-information markers on Romanian lab sheets: the national identity
// number and the lab's patient code. Both must be present before an image is
// treated as containing personal data.
const (
	markerNationalID  = "cnp"
	markerPatientCode = "cod pacient"
)

// AnonymizerService decides per page image whether personal information must
// be redacted, and produces the redacted artifact when it can.
type AnonymizerService struct {
	ocr OCREngine
}

func NewAnonymizerService(ocr OCREngine) *AnonymizerService {
	return &AnonymizerService{ocr: ocr}
}

// AnonymizeImage runs the gate for one image. The returned outcome is one of:
//   - Ok with WasAnonymized=true and a new redacted image artifact,
//   - Ok with WasAnonymized=false (no personal info, or unsupported provider),
//   - SoftFailure (OCR/redaction broke but we cannot tell the provider),
//   - HardFailure (processing broke on a recognized provider's document).
func (s *AnonymizerService) AnonymizeImage(ctx context.Context, imagePath string) AnonymizationOutcome {
	text, err := s.ocr.DetectText(ctx, imagePath)
	if err != nil {
		return s.classifyFailure(ctx, imagePath, err)
	}

	detected := strings.ToLower(text)
	if !strings.Contains(detected, markerNationalID) || !strings.Contains(detected, markerPatientCode) {
		return AnonymizationOutcome{
			Status: AnonymizationOk,
			Result: models.AnonymizationResult{ImagePath: imagePath, WasAnonymized: false},
		}
	}

	provider := matchProvider(detected)
	if provider == nil {
		log.WithField("image", filepath.Base(imagePath)).
			Warn("personal info detected but provider is unsupported, skipping redaction")
		return AnonymizationOutcome{
			Status: AnonymizationOk,
			Result: models.AnonymizationResult{ImagePath: imagePath, WasAnonymized: false, Provider: "Necunoscut"},
		}
	}

	redactedPath, err := redactTopRegion(imagePath, provider.HeaderPx)
	if err != nil {
		return s.classifyFailure(ctx, imagePath, err)
	}

	log.WithFields(log.Fields{
		"image":    filepath.Base(imagePath),
		"provider": provider.Name,
	}).Info("image anonymized")

	return AnonymizationOutcome{
		Status: AnonymizationOk,
		Result: models.AnonymizationResult{ImagePath: redactedPath, WasAnonymized: true, Provider: provider.Name},
	}
}

// classifyFailure decides between the soft and hard failure outcomes after
// OCR or redaction broke. A lightweight secondary text check is attempted;
// if it still points at a provider we know how to redact, the run must stop
// rather than risk forwarding an unredacted identity document.
func (s *AnonymizerService) classifyFailure(ctx context.Context, imagePath string, cause error) AnonymizationOutcome {
	log.WithError(cause).WithField("image", filepath.Base(imagePath)).Error("failed to anonymize image")

	fallbackText, fbErr := s.fallbackText(ctx, imagePath)
	if fbErr == nil && matchProvider(strings.ToLower(fallbackText)) != nil {
		return AnonymizationOutcome{
			Status: AnonymizationHardFailure,
			Result: models.AnonymizationResult{ImagePath: imagePath},
			Err:    fmt.Errorf("failed to anonymize supported provider document: %w", cause),
		}
	}

	return AnonymizationOutcome{
		Status: AnonymizationSoftFailure,
		Result: models.AnonymizationResult{ImagePath: imagePath, WasAnonymized: false},
		Err:    cause,
	}
}

// fallbackText is a best-effort text probe used only to classify failures.
// It retries OCR once; if that also fails the failure stays soft.
func (s *AnonymizerService) fallbackText(ctx context.Context, imagePath string) (string, error) {
	return s.ocr.DetectText(ctx, imagePath)
}

func matchProvider(loweredText string) *labProvider {
	for i := range knownProviders {
		for _, token := range knownProviders[i].TextTokens {
			if strings.Contains(loweredText, token) {
				return &knownProviders[i]
			}
		}
	}
	return nil
}

// redactTopRegion blacks out the top heightPx pixels of the image and writes
// the result next to the original as <name>_anonimizat.jpg.
func redactTopRegion(imagePath string, heightPx int) (string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", imagePath, err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("failed to decode image %s: %w", imagePath, err)
	}

	bounds := img.Bounds()
	if heightPx > bounds.Dy() {
		heightPx = bounds.Dy()
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(0, 0, float64(bounds.Dx()), float64(heightPx))
	dc.Fill()

	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	redactedPath := filepath.Join(filepath.Dir(imagePath), base+"_anonimizat.jpg")

	out, err := os.Create(redactedPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", redactedPath, err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, dc.Image(), &jpeg.Options{Quality: 90}); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", redactedPath, err)
	}
	return redactedPath, nil
}
