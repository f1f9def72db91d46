package handler

import (
	"errors"
	"net/http"

	"barstock/internal/config"
	"barstock/internal/domain/model"
	"barstock/internal/middleware"
	"barstock/internal/repository"
	auth "barstock/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase
	loginUC    *auth.LoginUsecase
	profileUC  *auth.ProfileUsecase
	logger     *zap.Logger
}

func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	profileUC *auth.ProfileUsecase,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		profileUC:  profileUC,
		logger:     logger,
	}
}

func (h *AuthHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/auth")

	g.POST("/register", h.register)
	g.POST("/login", h.login)

	authed := g.Group("")
	authed.Use(middleware.AuthJWT(cfg))
	authed.GET("/profile", h.profile)
	authed.POST("/change-password", h.changePassword)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AuthResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    model.User `json:"user"`
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid input"))
		}
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			return c.JSON(http.StatusBadRequest, errorJSON("username or email already exists"))
		}
		return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
	}

	h.logger.Info("user registered", zap.String("username", out.User.Username))

	return c.JSON(http.StatusCreated, AuthResponse{
		Success: true,
		Message: "user registered",
		Token:   out.Token.AccessToken,
		User:    out.User,
	})
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, errorJSON("username and password are required"))
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, errorJSON("invalid credentials"))
		}
		return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
	}

	//パスワードはログに出さない
	h.logger.Info("user logged in", zap.String("username", out.User.Username))

	return c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "login successful",
		Token:   out.Token.AccessToken,
		User:    out.User,
	})
}

func (h *AuthHandler) profile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	user, err := h.profileUC.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorJSON("user not found"))
		}
		return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
	}

	return c.JSON(http.StatusOK, user)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandler) changePassword(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}

	err := h.profileUC.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid input"))
		}
		if errors.Is(err, auth.ErrWrongPassword) {
			return c.JSON(http.StatusBadRequest, errorJSON("current password is incorrect"))
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorJSON("user not found"))
		}
		return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
	}

	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "password changed"})
}
