package handler

import (
	"net/http"
	"time"

	"barstock/internal/config"
	"barstock/internal/domain/model"
	"barstock/internal/middleware"
	"barstock/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// レポートはadminのみ
type ReportHandler struct {
	uc     *usecase.ReportUsecase
	logger *zap.Logger
}

func NewReportHandler(uc *usecase.ReportUsecase, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, logger: logger}
}

func (h *ReportHandler) RegisterRoutes(api *echo.Group, cfg config.Config, hierarchy middleware.RoleHierarchy) {
	g := api.Group("/reports")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RequireRole(hierarchy, model.RoleAdmin, h.logger))

	g.GET("/sales-summary", h.salesSummary)
	g.GET("/inventory-status", h.inventoryStatus)
}

func (h *ReportHandler) salesSummary(c echo.Context) error {
	var from, to *time.Time
	if v := c.QueryParam("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid startDate"))
		}
		from = &t
	}
	if v := c.QueryParam("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid endDate"))
		}
		to = &t
	}

	summary, err := h.uc.SalesSummary(c.Request().Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) inventoryStatus(c echo.Context) error {
	status, err := h.uc.InventoryStatus(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}
