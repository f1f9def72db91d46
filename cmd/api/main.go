package main

import (
	"net/http"
	"time"

	"barstock/internal/config"
	"barstock/internal/domain/model"
	"barstock/internal/handler"
	"barstock/internal/infra/db"
	infraRepo "barstock/internal/infra/repository"
	"barstock/internal/middleware"
	"barstock/internal/usecase"
	auth "barstock/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Client{},
		&model.StockMovement{},
	); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	saleRepo := infraRepo.NewSaleGormRepository(gormDB)
	clientRepo := infraRepo.NewClientGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//auth部品
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 24 * time.Hour,
	}

	//Usecase生成
	saleUC := usecase.NewSaleUsecase(txManager, saleRepo, logger)
	productUC := usecase.NewProductUsecase(txManager, productRepo, logger)
	clientUC := usecase.NewClientUsecase(txManager, clientRepo)
	reportUC := usecase.NewReportUsecase(saleRepo, productRepo)
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, issuer, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	profileUC := auth.NewProfileUsecase(userRepo, hasher, verifier)

	//Handler生成
	saleH := handler.NewSaleHandler(saleUC)
	productH := handler.NewProductHandler(productUC)
	clientH := handler.NewClientHandler(clientUC)
	authH := handler.NewAuthHandler(registerUC, loginUC, profileUC, logger)
	reportH := handler.NewReportHandler(reportUC, logger)

	e := echo.New()
	e.HideBanner = true

	//ルーティングの前にCORSを評価する
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS(middleware.OriginPolicy{
		Production:      cfg.IsProduction(),
		AllowedOrigins:  cfg.AllowedOrigins,
		PreviewContains: cfg.PreviewContains,
		PreviewSuffix:   cfg.PreviewSuffix,
	}, logger))

	api := e.Group("/api")
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	authH.RegisterRoutes(api, cfg)
	productH.RegisterRoutes(api, cfg)
	saleH.RegisterRoutes(api, cfg)
	clientH.RegisterRoutes(api, cfg)
	reportH.RegisterRoutes(api, cfg, middleware.DefaultRoleHierarchy())

	addr := ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.GoEnv))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
