package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"go.uber.org/zap"

	"github.com/Aashish23092/gst-bank-api/dto"
	"github.com/Aashish23092/gst-bank-api/utils"
)

var (
	ErrUnsupportedDocument = errors.New("unsupported document type")
	ErrUnreadableDocument  = errors.New("unable to read document")
	ErrNoIdentifiers       = errors.New("no GSTIN or IFSC code found in document")
)

// TextRecognizer runs OCR over an encoded image.
type TextRecognizer interface {
	ExtractText(imageData []byte) (string, error)
}

// DocumentService finds GSTINs and IFSC codes in uploaded documents such as
// registration certificates, invoices, cancelled cheques and UPI QR codes.
type DocumentService struct {
	pdfProcessor PDFProcessor
	ocr          TextRecognizer
	lookup       *LookupService
	log          *zap.Logger
}

// NewDocumentService creates a DocumentService. ocr may be nil, in which
// case images are only scanned for QR codes.
func NewDocumentService(pdfProcessor PDFProcessor, ocr TextRecognizer, lookup *LookupService, log *zap.Logger) *DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentService{
		pdfProcessor: pdfProcessor,
		ocr:          ocr,
		lookup:       lookup,
		log:          log,
	}
}

// scan accumulates recovered text per source.
type scan struct {
	sources []dto.ExtractSource
	texts   []string
}

func (sc *scan) add(source dto.ExtractSource, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	sc.texts = append(sc.texts, text)
	for _, s := range sc.sources {
		if s == source {
			return
		}
	}
	sc.sources = append(sc.sources, source)
}

// Extract scans the document and, when lookup is set, resolves the
// identifiers it found (at most the bulk limit of each kind).
func (s *DocumentService) Extract(ctx context.Context, data []byte, mimeType, password string, lookup bool) (*dto.ExtractResult, error) {
	var sc scan
	var err error

	switch {
	case strings.Contains(mimeType, "pdf"):
		err = s.scanPDF(data, password, &sc)
	case strings.Contains(mimeType, "png"), strings.Contains(mimeType, "jpeg"), strings.Contains(mimeType, "jpg"):
		err = s.scanImage(data, mimeType, &sc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDocument, mimeType)
	}
	if err != nil {
		return nil, err
	}

	result := &dto.ExtractResult{
		Sources: sc.sources,
		GSTINs:  []string{},
		IFSCs:   []string{},
	}
	joined := strings.Join(sc.texts, "\n")
	result.GSTINs = append(result.GSTINs, utils.FindGSTINs(joined)...)
	result.IFSCs = append(result.IFSCs, utils.FindIFSCs(joined)...)

	if result.Empty() {
		return nil, ErrNoIdentifiers
	}

	s.log.Info("identifiers extracted from document",
		zap.Int("gstins", len(result.GSTINs)),
		zap.Int("ifscs", len(result.IFSCs)),
		zap.Any("sources", result.Sources))

	if lookup && s.lookup != nil {
		if err := s.resolve(ctx, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *DocumentService) resolve(ctx context.Context, result *dto.ExtractResult) error {
	limit := s.lookup.MaxBatchSize()

	if len(result.GSTINs) > 0 {
		gstResults, err := s.lookup.BulkGST(ctx, capList(result.GSTINs, limit))
		if err != nil {
			return err
		}
		result.GSTResults = gstResults
	}
	if len(result.IFSCs) > 0 {
		bankResults, err := s.lookup.BulkBank(ctx, capList(result.IFSCs, limit))
		if err != nil {
			return err
		}
		result.BankResults = bankResults
	}
	return nil
}

func (s *DocumentService) scanPDF(data []byte, password string, sc *scan) error {
	text, textErr := s.pdfProcessor.ExtractText(data, password)
	if textErr != nil {
		s.log.Warn("pdf text extraction failed", zap.Error(textErr))
	}
	sc.add(dto.SourcePDFText, text)

	images, imgErr := s.pdfProcessor.ExtractImages(data, password)
	if imgErr != nil {
		s.log.Warn("pdf image extraction failed", zap.Error(imgErr))
	}

	if textErr != nil && imgErr != nil {
		return fmt.Errorf("%w: %v", ErrUnreadableDocument, textErr)
	}

	for _, img := range images {
		if payload, ok := s.decodeQR(img); ok {
			sc.add(dto.SourceQR, utils.ExpandQRPayload(payload))
		}
	}

	// scanned PDFs have no text layer, only page images
	if len(sc.texts) == 0 && s.ocr != nil {
		for _, img := range images {
			buf := new(bytes.Buffer)
			if err := png.Encode(buf, img); err != nil {
				continue
			}
			s.addOCR(buf.Bytes(), sc)
		}
	}
	return nil
}

func (s *DocumentService) scanImage(data []byte, mimeType string, sc *scan) error {
	img, err := decodeImage(data, mimeType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	if payload, ok := s.decodeQR(img); ok {
		expanded := utils.ExpandQRPayload(payload)
		sc.add(dto.SourceQR, expanded)
		if len(utils.FindGSTINs(expanded)) > 0 || len(utils.FindIFSCs(expanded)) > 0 {
			return nil
		}
	}

	if s.ocr == nil {
		return nil
	}
	s.addOCR(data, sc)
	return nil
}

func (s *DocumentService) addOCR(imageData []byte, sc *scan) {
	text, err := s.ocr.ExtractText(imageData)
	if err != nil {
		s.log.Warn("ocr failed", zap.Error(err))
		return
	}
	s.log.Debug("ocr extracted text", zap.Int("chars", len(text)))
	sc.add(dto.SourceOCR, text)
}

// decodeQR returns the text of the QR code in img, if there is one.
func (s *DocumentService) decodeQR(img image.Image) (string, bool) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", false
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", false
	}

	s.log.Debug("qr code decoded", zap.Int("bytes", len(result.GetText())))
	return result.GetText(), true
}

// decodeImage decodes an image from bytes based on MIME type
func decodeImage(data []byte, mimeType string) (image.Image, error) {
	reader := bytes.NewReader(data)

	if strings.Contains(mimeType, "png") {
		return png.Decode(reader)
	} else if strings.Contains(mimeType, "jpeg") || strings.Contains(mimeType, "jpg") {
		return jpeg.Decode(reader)
	}

	img, _, err := image.Decode(reader)
	return img, err
}

func capList(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
