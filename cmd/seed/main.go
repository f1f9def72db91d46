package main

import (
	"context"
	"errors"

	"barstock/internal/domain/model"
	"barstock/internal/infra/db"
	infraRepo "barstock/internal/infra/repository"
	repo "barstock/internal/repository"
	auth "barstock/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// 開発用の初期データを投入する。既存データは上書きしない。
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

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

	ctx := context.Background()
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	hasher := auth.NewBcryptPasswordHasher(12)

	users := []struct {
		username string
		email    string
		password string
		role     model.Role
	}{
		{"admin", "admin@barstock.local", "admin123", model.RoleAdmin},
		{"manager", "manager@barstock.local", "manager123", model.RoleManager},
		{"staff", "staff@barstock.local", "user123", model.RoleUser},
	}

	for _, u := range users {
		if _, err := userRepo.FindByUsername(ctx, u.username); err == nil {
			logger.Info("user exists, skipping", zap.String("username", u.username))
			continue
		} else if !errors.Is(err, repo.ErrUserNotFound) {
			logger.Fatal("user lookup failed", zap.Error(err))
		}

		hash, err := hasher.Hash(u.password)
		if err != nil {
			logger.Fatal("hash failed", zap.Error(err))
		}
		if err := userRepo.Create(ctx, &model.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: hash,
			Role:         u.role,
			IsActive:     true,
		}); err != nil {
			logger.Fatal("user create failed", zap.Error(err))
		}
		logger.Info("user created", zap.String("username", u.username), zap.String("role", string(u.role)))
	}

	barcode := func(s string) *string { return &s }
	products := []model.Product{
		{Name: "Lager 330ml", Stock: 120, MinStock: 24, Price: 350, Unit: "bottle", Category: "beer", Barcode: barcode("7501000000011")},
		{Name: "IPA 330ml", Stock: 60, MinStock: 12, Price: 450, Unit: "bottle", Category: "beer", Barcode: barcode("7501000000028")},
		{Name: "House Red 750ml", Stock: 18, MinStock: 6, Price: 1500, Unit: "bottle", Category: "wine"},
		{Name: "Tequila Blanco 700ml", Stock: 10, MinStock: 3, Price: 2800, Unit: "bottle", Category: "spirits"},
		{Name: "Lime", Stock: 200, MinStock: 50, Price: 15, Unit: "piece", Category: "garnish"},
		{Name: "Tonic Water 200ml", Stock: 80, MinStock: 20, Price: 120, Unit: "bottle", Category: "mixer"},
	}

	for _, p := range products {
		if p.Barcode != nil {
			if _, err := productRepo.FindByBarcode(ctx, *p.Barcode); err == nil {
				logger.Info("product exists, skipping", zap.String("name", p.Name))
				continue
			}
		}
		created, err := productRepo.Create(ctx, p)
		if err != nil {
			logger.Fatal("product create failed", zap.Error(err))
		}
		logger.Info("product created", zap.Int64("id", created.ID), zap.String("name", created.Name))
	}

	logger.Info("seed complete")
}
