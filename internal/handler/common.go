package handler

import (
	"net/http"

	"barstock/internal/middleware"
	"barstock/internal/usecase"

	"github.com/labstack/echo/v4"
)

// エラーボディはどこでも {success:false, message} の形
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func errorJSON(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Message: msg}
}

// usecaseのHTTPErrorをレスポンスに変換する唯一の場所
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, errorJSON(he.Message))
	}

	//500
	return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	id, ok := raw.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
