package auth

import (
	"context"
	"errors"

	"barstock/internal/domain/model"
	"barstock/internal/repository"
)

// 現在のパスワードが違う
var ErrWrongPassword = errors.New("current password is incorrect")

type ProfileUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
}

func NewProfileUsecase(userRepo repository.UserRepository, hasher PasswordHasher, verifier PasswordVerifier) *ProfileUsecase {
	return &ProfileUsecase{userRepo: userRepo, hasher: hasher, verifier: verifier}
}

func (u *ProfileUsecase) Get(ctx context.Context, userID int64) (model.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	return *user, nil
}

// 現在のパスワードを確認してから新パスワードに置き換える
func (u *ProfileUsecase) ChangePassword(ctx context.Context, userID int64, current string, next string) error {
	if current == "" || next == "" {
		return ErrInvalidInput
	}
	if len(next) < 6 {
		return ErrInvalidInput
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if ok := u.verifier.Verify(current, user.PasswordHash); !ok {
		return ErrWrongPassword
	}

	hash, err := u.hasher.Hash(next)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	return u.userRepo.Update(ctx, user)
}
