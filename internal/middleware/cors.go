package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// origin→許可/拒否を判定する純粋なポリシー。
// ルーティングの前に評価して、拒否は専用の403で返す。
type OriginPolicy struct {
	//本番ではlocalhostを許可しない
	Production bool

	//明示的な許可リスト
	AllowedOrigins []string

	//プレビューURLのパターン（両方を含むoriginを許可）
	PreviewContains string
	PreviewSuffix   string
}

// originを許可するかどうか
func (p OriginPolicy) Allow(origin string) bool {
	//Originなし（curl、モバイルアプリなど）は許可
	if origin == "" {
		return true
	}

	//開発中はlocalhostを許可
	if !p.Production && strings.HasPrefix(origin, "http://localhost") {
		return true
	}

	for _, allowed := range p.AllowedOrigins {
		if allowed != "" && origin == allowed {
			return true
		}
	}

	//デプロイプレビューのURLパターン
	if p.PreviewContains != "" && p.PreviewSuffix != "" &&
		strings.Contains(origin, p.PreviewContains) && strings.Contains(origin, p.PreviewSuffix) {
		return true
	}

	return false
}

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, PATCH, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-Requested-With, Origin, Accept, X-Request-Id"
	corsMaxAge       = "86400"
)

// CORSミドルウェア。拒否したoriginには汎用エラーではなく
// 専用の403ボディを返す（エラーハンドラに流さない）。
func CORS(policy OriginPolicy, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)

			if !policy.Allow(origin) {
				logger.Warn("cors denied",
					zap.String("origin", origin),
					zap.String("method", c.Request().Method),
					zap.String("path", c.Request().URL.Path),
				)
				return c.JSON(http.StatusForbidden, errorJSON("origin not allowed"))
			}

			if origin != "" {
				h := c.Response().Header()
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
				h.Set(echo.HeaderAccessControlAllowCredentials, "true")
				h.Add(echo.HeaderVary, echo.HeaderOrigin)
			}

			//プリフライトはここで終わらせる
			if c.Request().Method == http.MethodOptions {
				h := c.Response().Header()
				h.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
				h.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)
				h.Set(echo.HeaderAccessControlMaxAge, corsMaxAge)
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}
