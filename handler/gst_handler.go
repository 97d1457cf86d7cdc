package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aashish23092/gst-bank-api/client"
	"github.com/Aashish23092/gst-bank-api/dto"
	"github.com/Aashish23092/gst-bank-api/service"
)

// GSTHandler handles GST lookups
type GSTHandler struct {
	lookup *service.LookupService
	log    *zap.Logger
}

// NewGSTHandler creates a new GSTHandler instance
func NewGSTHandler(lookup *service.LookupService, log *zap.Logger) *GSTHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &GSTHandler{lookup: lookup, log: log}
}

// FetchGST handles POST /api/gst
func (h *GSTHandler) FetchGST(c *gin.Context) {
	var req dto.GSTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	details, err := h.lookup.LookupGST(c.Request.Context(), req.GSTIN)
	if err != nil {
		sendLookupError(c, h.log, err)
		return
	}
	sendSuccess(c, client.GSTSuccessMessage, details)
}

// BulkGST handles POST /api/bulk/gst
func (h *GSTHandler) BulkGST(c *gin.Context) {
	const emptyMessage = "Please provide a list of GSTINs"

	var req dto.BulkGSTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, emptyMessage)
		return
	}

	results, err := h.lookup.BulkGST(c.Request.Context(), req.GSTINList)
	switch {
	case errors.Is(err, service.ErrEmptyBatch):
		sendError(c, http.StatusBadRequest, emptyMessage)
		return
	case errors.Is(err, service.ErrBatchTooLarge):
		sendError(c, http.StatusBadRequest,
			fmt.Sprintf("Maximum %d GSTINs allowed per request", h.lookup.MaxBatchSize()))
		return
	case err != nil:
		sendLookupError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.BulkResponse{
		Success: true,
		Message: fmt.Sprintf("Processed %d GSTINs", len(results)),
		Results: results,
	})
}
