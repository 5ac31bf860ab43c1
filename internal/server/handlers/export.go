package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/export"
	"github.com/vzahanych/trip-planner-app/internal/server/utils"
	"go.uber.org/zap"
)

type ExportHandler struct {
	cfg    config.ExportConfig
	logger *zap.Logger
}

func NewExportHandler(cfg config.ExportConfig, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		cfg:    cfg,
		logger: logger,
	}
}

// Export handles POST /api/v1/exports/:format and returns the document as
// an attachment. Failures here never affect an already generated plan.
func (h *ExportHandler) Export(c *gin.Context) {
	reqLogger := utils.RequestLogger(c, h.logger)

	var req ExportRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request parameters", Code: "INVALID_PARAMS", Details: err.Error()})
		return
	}
	if err := c.ShouldBind(&req); err != nil {
		reqLogger.Warn("Invalid export body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request parameters", Code: "INVALID_PARAMS", Details: err.Error()})
		return
	}
	if fields := utils.ValidateStruct(req); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, validationResponse(fields))
		return
	}

	exporter, err := export.For(req.Format, h.cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported export format", Code: "INVALID_PARAMS", Details: err.Error()})
		return
	}

	data, err := exporter.Export(req.Itinerary)
	switch {
	case errors.Is(err, export.ErrEmptyText):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Nothing to export", Code: "INVALID_PARAMS", Details: err.Error()})
		return
	case err != nil:
		reqLogger.Error("Export failed", zap.String("format", req.Format), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to export travel plan", Code: "EXPORT_ERROR", Details: err.Error()})
		return
	}

	reqLogger.Info("Travel plan exported", zap.String("format", exporter.Extension()), zap.Int("bytes", len(data)))
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(exporter)+`"`)
	c.Data(http.StatusOK, exporter.ContentType(), data)
}
