package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/gst-bank-api/dto"
)

const ServiceName = "GST/Bank API"

// InfoHandler serves the service description and health check.
type InfoHandler struct {
	version string
	now     func() time.Time
}

func NewInfoHandler(version string) *InfoHandler {
	return &InfoHandler{
		version: version,
		now:     time.Now,
	}
}

// Home handles GET /
func (h *InfoHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ServiceInfo{
		Message: "GST and Bank Details API",
		Version: h.version,
		Endpoints: map[string]string{
			"GET /":                   "API information",
			"GET /api/health":         "Health check",
			"GET /metrics":            "Prometheus metrics",
			"POST /api/gst":           "Fetch GST details",
			"POST /api/bank":          "Fetch bank details from IFSC",
			"POST /api/validate/gst":  "Validate GSTIN format",
			"POST /api/validate/ifsc": "Validate IFSC format",
			"POST /api/bulk/gst":      "Fetch GST details for up to 10 GSTINs",
			"POST /api/bulk/bank":     "Fetch bank details for up to 10 IFSC codes",
			"POST /api/extract":       "Find GSTINs and IFSC codes in a PDF or image",
		},
		Usage: map[string]dto.EndpointUsage{
			"gst": {
				Method: "POST",
				URL:    "/api/gst",
				Body:   map[string]string{"gstin": "15-character GSTIN"},
			},
			"bank": {
				Method: "POST",
				URL:    "/api/bank",
				Body:   map[string]string{"ifsc": "11-character IFSC code"},
			},
			"extract": {
				Method: "POST",
				URL:    "/api/extract",
				Body: map[string]string{
					"file":     "PDF, PNG or JPEG (multipart)",
					"password": "optional PDF password",
					"lookup":   "optional, true to fetch details",
				},
			},
		},
	})
}

// Health handles GET /api/health
func (h *InfoHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().Format(time.RFC3339),
		Service:   ServiceName,
	})
}
