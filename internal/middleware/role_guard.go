package middleware

import (
	"net/http"

	"barstock/internal/domain/model"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// role→レベルの対応表。モジュール変数ではなく注入する
// （テストで別の階層に差し替えられるように）。
type RoleHierarchy map[model.Role]int

// 既定の階層
func DefaultRoleHierarchy() RoleHierarchy {
	return RoleHierarchy{
		model.RoleAdmin:   3,
		model.RoleManager: 2,
		model.RoleUser:    1,
	}
}

// contextのroleのレベルがminRole以上かを確認する。
// 未知のroleはレベル0（全部拒否）。
func RequireRole(hierarchy RoleHierarchy, minRole model.Role, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			userLevel := hierarchy[model.Role(role)]
			requiredLevel, known := hierarchy[minRole]
			if !known || userLevel < requiredLevel {
				logger.Warn("access denied",
					zap.String("role", role),
					zap.String("required_role", string(minRole)),
					zap.String("path", c.Path()),
				)
				return c.JSON(http.StatusForbidden, errorJSON("insufficient permissions"))
			}

			return next(c)
		}
	}
}
