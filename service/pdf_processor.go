package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type PDFProcessor interface {
	ExtractText(pdfData []byte, password string) (string, error)
	ExtractImages(pdfData []byte, password string) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractText returns the text layer of every page, one line per text row.
// Encrypted documents are decrypted with password first.
func (p *pdfProcessor) ExtractText(pdfData []byte, password string) (string, error) {
	data, err := decryptPDF(pdfData, password)
	if err != nil {
		return "", err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var textBuilder bytes.Buffer
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

// ExtractImages returns the images embedded in the document, e.g. the QR
// code printed on an e-invoice or a scanned certificate page.
func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	inFile, err := writeTempPDF(tempDir, pdfData)
	if err != nil {
		return nil, err
	}

	outDir := filepath.Join(tempDir, "images")
	if err := os.Mkdir(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create image dir: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}

	// nil selects all pages
	if err := api.ExtractImagesFile(inFile, outDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	files, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image dir: %w", err)
	}

	var images []image.Image
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgFile, err := os.Open(filepath.Join(outDir, file.Name()))
		if err != nil {
			continue
		}

		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}

// decryptPDF returns pdfData unchanged when no password is given or the
// document is not encrypted.
func decryptPDF(pdfData []byte, password string) ([]byte, error) {
	if password == "" || !isEncrypted(pdfData) {
		return pdfData, nil
	}

	tempDir, err := os.MkdirTemp("", "pdf_decrypt")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	inFile, err := writeTempPDF(tempDir, pdfData)
	if err != nil {
		return nil, err
	}
	outFile := filepath.Join(tempDir, "decrypted.pdf")

	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	if err := api.DecryptFile(inFile, outFile, conf); err != nil {
		return nil, fmt.Errorf("failed to decrypt pdf: %w", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read decrypted pdf: %w", err)
	}
	return data, nil
}

// isEncrypted reports whether the trailer names an Encrypt dictionary.
// Documents the reader cannot open are left to pdfcpu to judge.
func isEncrypted(pdfData []byte) bool {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return true
	}
	return !r.Trailer().Key("Encrypt").IsNull()
}

func writeTempPDF(dir string, pdfData []byte) (string, error) {
	path := filepath.Join(dir, "document.pdf")
	if err := os.WriteFile(path, pdfData, 0o600); err != nil {
		return "", fmt.Errorf("failed to write pdf data: %w", err)
	}
	return path, nil
}
