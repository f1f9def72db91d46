package config

import (
	"fmt"
	"os"
	"strings"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート

	JWTSecret string // JWT署名シークレット

	GoEnv string // development/production

	// CORS設定
	AllowedOrigins  []string // 明示的な許可リスト（カンマ区切り）
	PreviewContains string   // プレビューURLに含まれる文字列
	PreviewSuffix   string   // プレビューURLのドメイン末尾
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:            os.Getenv("PORT"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		GoEnv:           os.Getenv("GO_ENV"),
		PreviewContains: os.Getenv("CORS_PREVIEW_CONTAINS"),
		PreviewSuffix:   os.Getenv("CORS_PREVIEW_SUFFIX"),
	}

	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "development"
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
