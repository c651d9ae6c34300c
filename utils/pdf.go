package utils

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	log "github.com/sirupsen/logrus"
)

const rasterDPI = 300

// ConvertPDFToImages rasterizes every page of a PDF to a 300 DPI PNG in the
// OS temp directory and returns the file paths in page order. Callers own
// the files and must delete them when the run ends.
func ConvertPDFToImages(pdfBytes []byte) ([]string, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var imageFiles []string
	for page := 0; page < doc.NumPage(); page++ {
		img, err := doc.ImageDPI(page, rasterDPI)
		if err != nil {
			return imageFiles, fmt.Errorf("failed to rasterize page %d: %w", page+1, err)
		}

		imagePath := filepath.Join(os.TempDir(), fmt.Sprintf("medical_page_%d.png", page+1))
		f, err := os.Create(imagePath)
		if err != nil {
			return imageFiles, fmt.Errorf("failed to create %s: %w", imagePath, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return imageFiles, fmt.Errorf("failed to encode page %d: %w", page+1, err)
		}
		if err := f.Close(); err != nil {
			return imageFiles, err
		}

		imageFiles = append(imageFiles, imagePath)
		log.WithField("page", page+1).Debug("converted PDF page to image")
	}

	return imageFiles, nil
}
