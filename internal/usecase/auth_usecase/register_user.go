package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"barstock/internal/domain/model"
	"barstock/internal/repository"
)

// 会員登録の入力
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User  model.User
	Token TokenOutput
}

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

// ユーザー名またはemailが既に使用済み
var ErrUserAlreadyExists = errors.New("username or email already exists")

type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	issuer AccessTokenIssuer,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		clock:    clock,
	}
}

func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	//必須チェック
	if username == "" || email == "" || in.Password == "" {
		return out, ErrInvalidInput
	}
	if len(username) > 50 {
		return out, ErrInvalidInput
	}

	//email形式
	if _, err := mail.ParseAddress(email); err != nil {
		return out, ErrInvalidInput
	}

	//パスワード最低文字数
	if len(in.Password) < 6 {
		return out, ErrInvalidInput
	}

	//roleは未指定ならuser
	role := model.Role(in.Role)
	if in.Role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return out, ErrInvalidInput
	}

	//重複チェック
	if _, err := u.userRepo.FindByUsername(ctx, username); err == nil {
		return out, ErrUserAlreadyExists
	}
	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return out, ErrUserAlreadyExists
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return out, err
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return out, err
	}

	out.User = *user
	out.Token = TokenOutput{
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now) / time.Second),
	}
	return out, nil
}
