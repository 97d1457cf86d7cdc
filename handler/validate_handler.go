package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/gst-bank-api/dto"
	"github.com/Aashish23092/gst-bank-api/utils"
)

// ValidateHandler checks identifier formats without calling any provider.
// An invalid identifier is still a 200; only an unparseable body is a 400.
type ValidateHandler struct{}

func NewValidateHandler() *ValidateHandler {
	return &ValidateHandler{}
}

// ValidateGST handles POST /api/validate/gst
func (h *ValidateHandler) ValidateGST(c *gin.Context) {
	var req dto.GSTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	gstin := utils.NormalizeIdentifier(req.GSTIN)
	resp := dto.GSTValidationResponse{
		GSTIN:   gstin,
		Success: true,
		Valid:   true,
		Message: utils.GSTINValidMessage,
	}
	if err := utils.ValidateGSTIN(gstin); err != nil {
		resp.Success, resp.Valid, resp.Message = false, false, err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// ValidateIFSC handles POST /api/validate/ifsc
func (h *ValidateHandler) ValidateIFSC(c *gin.Context) {
	var req dto.BankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ifsc := utils.NormalizeIdentifier(req.IFSC)
	resp := dto.IFSCValidationResponse{
		IFSC:    ifsc,
		Success: true,
		Valid:   true,
		Message: utils.IFSCValidMessage,
	}
	if err := utils.ValidateIFSC(ifsc); err != nil {
		resp.Success, resp.Valid, resp.Message = false, false, err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
