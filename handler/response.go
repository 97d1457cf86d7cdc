package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aashish23092/gst-bank-api/client"
	"github.com/Aashish23092/gst-bank-api/dto"
	"github.com/Aashish23092/gst-bank-api/utils"
)

const (
	internalErrorMessage = "Internal server error"
	notFoundMessage      = "Endpoint not found"
	invalidBodyMessage   = "Invalid request body"
)

func sendSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// sendError sends a failure envelope with data set to null
func sendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.Envelope{
		Success: false,
		Message: message,
	})
}

// sendLookupError maps a lookup failure onto the envelope. Validation and
// provider failures are client-visible 400s; anything else is logged and
// reported as a generic 500.
func sendLookupError(c *gin.Context, log *zap.Logger, err error) {
	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		sendError(c, http.StatusBadRequest, verr.Message)
		return
	}

	var ferr *client.FetchError
	if errors.As(err, &ferr) {
		sendError(c, http.StatusBadRequest, ferr.Message)
		return
	}

	log.Error("lookup failed",
		zap.String("path", c.FullPath()),
		zap.String("request_id", requestID(c)),
		zap.Error(err))
	sendError(c, http.StatusInternalServerError, internalErrorMessage)
}
