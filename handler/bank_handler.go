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

// BankHandler handles IFSC lookups
type BankHandler struct {
	lookup *service.LookupService
	log    *zap.Logger
}

func NewBankHandler(lookup *service.LookupService, log *zap.Logger) *BankHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BankHandler{lookup: lookup, log: log}
}

// FetchBank handles POST /api/bank
func (h *BankHandler) FetchBank(c *gin.Context) {
	var req dto.BankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	details, err := h.lookup.LookupBank(c.Request.Context(), req.IFSC)
	if err != nil {
		sendLookupError(c, h.log, err)
		return
	}
	sendSuccess(c, client.BankSuccessMessage, details)
}

// BulkBank handles POST /api/bulk/bank
func (h *BankHandler) BulkBank(c *gin.Context) {
	const emptyMessage = "Please provide a list of IFSC codes"

	var req dto.BulkBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, emptyMessage)
		return
	}

	results, err := h.lookup.BulkBank(c.Request.Context(), req.IFSCList)
	switch {
	case errors.Is(err, service.ErrEmptyBatch):
		sendError(c, http.StatusBadRequest, emptyMessage)
		return
	case errors.Is(err, service.ErrBatchTooLarge):
		sendError(c, http.StatusBadRequest,
			fmt.Sprintf("Maximum %d IFSC codes allowed per request", h.lookup.MaxBatchSize()))
		return
	case err != nil:
		sendLookupError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.BulkResponse{
		Success: true,
		Message: fmt.Sprintf("Processed %d IFSC codes", len(results)),
		Results: results,
	})
}
