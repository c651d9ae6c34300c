// utils/textract.go
package utils

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	log "github.com/sirupsen/logrus"
)

var textractClient *textract.Client

// must be called once at startup (e.g. in main.go)
func InitTextract() {
	awsRegion := os.Getenv("AWS_REGION")
	if awsRegion == "" {
		log.Fatal("AWS_REGION not set")
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		log.Fatalf("unable to load AWS config: %v", err)
	}
	textractClient = textract.NewFromConfig(cfg)
}

// TextractOCR recognizes printed text on page images through AWS Textract.
type TextractOCR struct{}

// DetectText runs OCR on an image file and returns the detected lines joined
// with newlines.
func (TextractOCR) DetectText(ctx context.Context, imagePath string) (string, error) {
	if textractClient == nil {
		InitTextract()
	}

	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}

	out, err := textractClient.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: imageBytes},
	})
	if err != nil {
		return "", fmt.Errorf("textract error for %s: %w", imagePath, err)
	}

	var sb strings.Builder
	for _, block := range out.Blocks {
		if block.BlockType == types.BlockTypeLine && block.Text != nil {
			sb.WriteString(*block.Text)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
