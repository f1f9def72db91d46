package handler

import (
	"net/http"
	"strconv"
	"time"

	"barstock/internal/config"
	"barstock/internal/middleware"
	"barstock/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SaleHandler struct {
	uc *usecase.SaleUsecase
}

func NewSaleHandler(uc *usecase.SaleUsecase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

func (h *SaleHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/sales")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	//固定パスは:idより先に登録する
	g.GET("/date-range", h.listByDateRange)
	g.GET("/statistics", h.statistics)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *SaleHandler) list(c echo.Context) error {
	sales, err := h.uc.ListSales(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	sale, err := h.uc.GetSale(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	var req usecase.CreateSaleInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}

	sale, err := h.uc.CreateSale(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) updateStatus(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	var req usecase.UpdateSaleStatusInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}

	sale, err := h.uc.UpdateSaleStatus(c.Request().Context(), userID, id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) listByDateRange(c echo.Context) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return writeError(c, err)
	}

	sales, err := h.uc.ListSalesByDateRange(c.Request().Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) statistics(c echo.Context) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return writeError(c, err)
	}

	stats, err := h.uc.Statistics(c.Request().Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// startDate/endDateは必須。RFC3339か日付のみを受ける。
func parseDateRange(c echo.Context) (time.Time, time.Time, error) {
	startRaw := c.QueryParam("startDate")
	endRaw := c.QueryParam("endDate")
	if startRaw == "" || endRaw == "" {
		return time.Time{}, time.Time{}, usecase.NewHTTPError(http.StatusBadRequest, "startDate and endDate are required")
	}

	from, err := parseDate(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid startDate")
	}
	to, err := parseDate(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid endDate")
	}

	//日付のみ指定ならendDateはその日の終わりまで含める
	if len(endRaw) == len("2006-01-02") {
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return from, to, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
