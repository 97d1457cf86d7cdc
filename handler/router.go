package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aashish23092/gst-bank-api/metrics"
)

// Handlers groups the endpoint handlers mounted by NewRouter. Document may
// be nil when OCR support is not configured.
type Handlers struct {
	Info     *InfoHandler
	Validate *ValidateHandler
	GST      *GSTHandler
	Bank     *BankHandler
	Document *DocumentHandler
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(h Handlers, m *metrics.Metrics, log *zap.Logger, maxUpload int64) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.MaxMultipartMemory = maxUpload

	// Recovery sits innermost so the access log and metrics see the 500
	router.Use(RequestID(), AccessLog(log), Metrics(m), CORS(), Recovery(log))

	router.NoRoute(func(c *gin.Context) {
		sendError(c, http.StatusNotFound, notFoundMessage)
	})

	router.GET("/", h.Info.Home)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := router.Group("/api")
	{
		api.GET("/health", h.Info.Health)

		api.POST("/gst", h.GST.FetchGST)
		api.POST("/bank", h.Bank.FetchBank)

		validate := api.Group("/validate")
		{
			validate.POST("/gst", h.Validate.ValidateGST)
			validate.POST("/ifsc", h.Validate.ValidateIFSC)
		}

		bulk := api.Group("/bulk")
		{
			bulk.POST("/gst", h.GST.BulkGST)
			bulk.POST("/bank", h.Bank.BulkBank)
		}

		if h.Document != nil {
			api.POST("/extract", h.Document.Extract)
		}
	}

	return router
}
