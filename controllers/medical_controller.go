package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/AnaLarisa/nutriWave-api/services"

	"github.com/gin-gonic/gin"
)

const maxMedicalPdfBytes = 20 << 20

type MedicalController struct {
	Pdf *services.MedicalPdfService
}

func NewMedicalController(pdf *services.MedicalPdfService) *MedicalController {
	return &MedicalController{Pdf: pdf}
}

// ProcessPdf accepts a multipart "file" field holding a medical analysis
// PDF and runs the full pipeline. The response carries the extracted test
// rows and the recommendations that were applied.
func (mc *MedicalController) ProcessPdf(c *gin.Context) {
	userID := c.GetUint("userID")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if fileHeader.Size > maxMedicalPdfBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the 20MB limit"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are accepted"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	pdfBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := mc.Pdf.ProcessDocument(c.Request.Context(), pdfBytes, fileHeader.Filename, userID)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
