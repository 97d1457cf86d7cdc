package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aashish23092/gst-bank-api/service"
)

const invalidFileTypeMessage = "Invalid file type. Supported: PDF, PNG, JPEG"

// DocumentHandler handles identifier extraction from uploaded documents
type DocumentHandler struct {
	documents   *service.DocumentService
	maxFileSize int64
	log         *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler instance
func NewDocumentHandler(documents *service.DocumentService, maxFileSize int64, log *zap.Logger) *DocumentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentHandler{
		documents:   documents,
		maxFileSize: maxFileSize,
		log:         log,
	}
}

// Extract handles the POST /api/extract endpoint
func (h *DocumentHandler) Extract(c *gin.Context) {
	// leave room for the other form fields and multipart framing
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize+1<<20)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(c, http.StatusBadRequest, h.tooLargeMessage())
			return
		}
		sendError(c, http.StatusBadRequest, "A file is required")
		return
	}
	if file.Size > h.maxFileSize {
		sendError(c, http.StatusBadRequest, h.tooLargeMessage())
		return
	}

	reader, err := file.Open()
	if err != nil {
		sendLookupError(c, h.log, fmt.Errorf("open upload: %w", err))
		return
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		sendLookupError(c, h.log, fmt.Errorf("read upload: %w", err))
		return
	}

	mimeType := detectMimeType(fileData, file.Header.Get("Content-Type"), file.Filename)
	if !isValidMimeType(mimeType) {
		sendError(c, http.StatusBadRequest, invalidFileTypeMessage)
		return
	}

	lookup, _ := strconv.ParseBool(c.PostForm("lookup"))
	h.log.Debug("processing document",
		zap.String("mime_type", mimeType),
		zap.Int64("size", file.Size),
		zap.Bool("lookup", lookup),
		zap.String("request_id", requestID(c)))

	result, err := h.documents.Extract(c.Request.Context(), fileData, mimeType, c.PostForm("password"), lookup)
	switch {
	case errors.Is(err, service.ErrUnsupportedDocument):
		sendError(c, http.StatusBadRequest, invalidFileTypeMessage)
		return
	case errors.Is(err, service.ErrUnreadableDocument):
		h.log.Info("document unreadable", zap.Error(err), zap.String("request_id", requestID(c)))
		sendError(c, http.StatusUnprocessableEntity, "Unable to read document. Check the file and password.")
		return
	case errors.Is(err, service.ErrNoIdentifiers):
		sendError(c, http.StatusUnprocessableEntity, "No GSTIN or IFSC code found in document")
		return
	case err != nil:
		sendLookupError(c, h.log, err)
		return
	}

	sendSuccess(c,
		fmt.Sprintf("Found %d GSTINs and %d IFSC codes", len(result.GSTINs), len(result.IFSCs)),
		result)
}

func (h *DocumentHandler) tooLargeMessage() string {
	if h.maxFileSize%(1<<20) == 0 {
		return fmt.Sprintf("File too large. Maximum size is %d MB", h.maxFileSize>>20)
	}
	return fmt.Sprintf("File too large. Maximum size is %d bytes", h.maxFileSize)
}

// detectMimeType trusts the file content first, then the declared
// Content-Type, then the file extension.
func detectMimeType(data []byte, declared, filename string) string {
	if sniffed := mimetype.Detect(data).String(); isValidMimeType(sniffed) {
		return sniffed
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return inferMimeType(filename)
}

// isValidMimeType checks if the MIME type is supported
func isValidMimeType(mimeType string) bool {
	validTypes := []string{
		"application/pdf",
		"image/png",
		"image/jpeg",
		"image/jpg",
	}

	mimeType = strings.ToLower(mimeType)
	for _, valid := range validTypes {
		if strings.Contains(mimeType, valid) {
			return true
		}
	}
	return false
}

// inferMimeType infers MIME type from file extension
func inferMimeType(filename string) string {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".pdf") {
		return "application/pdf"
	} else if strings.HasSuffix(lower, ".png") {
		return "image/png"
	} else if strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg") {
		return "image/jpeg"
	}
	return ""
}
