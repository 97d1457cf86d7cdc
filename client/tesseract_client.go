package client

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

type TesseractClient struct {
	dataPath string
	language string
	log      *zap.Logger
}

func NewTesseractClient(dataPath string, log *zap.Logger) *TesseractClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &TesseractClient{
		dataPath: dataPath,
		language: "eng",
		log:      log,
	}
}

// ExtractText runs OCR over an encoded PNG or JPEG image.
func (tc *TesseractClient) ExtractText(imageData []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}

	if err := client.SetLanguage(tc.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	// identifiers are uppercase alphanumerics
	if err := client.SetWhitelist("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 :-/.,@\n"); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}

	if err := client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	tc.log.Debug("tesseract extracted text", zap.Int("chars", len(text)))
	return text, nil
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	tc.log.Debug("tesseract client closed")
}
