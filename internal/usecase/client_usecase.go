package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"barstock/internal/domain/model"
	repo "barstock/internal/repository"
)

type ClientUsecase struct {
	tx         repo.TransactionManager
	clientRepo repo.ClientRepository
}

func NewClientUsecase(tx repo.TransactionManager, clientRepo repo.ClientRepository) *ClientUsecase {
	return &ClientUsecase{tx: tx, clientRepo: clientRepo}
}

type ClientInput struct {
	Name           string  `json:"name"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	CreditLimit    int64   `json:"credit_limit"`
	CurrentBalance int64   `json:"current_balance"`
}

func (in ClientInput) validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if len(name) > 100 {
		return NewHTTPError(http.StatusBadRequest, "name must not exceed 100 characters")
	}
	if in.Email != nil {
		if _, err := mail.ParseAddress(*in.Email); err != nil {
			return NewHTTPError(http.StatusBadRequest, "invalid email")
		}
	}
	if in.CreditLimit < 0 {
		return NewHTTPError(http.StatusBadRequest, "credit limit must not be negative")
	}
	if in.CurrentBalance < 0 {
		return NewHTTPError(http.StatusBadRequest, "current balance must not be negative")
	}
	return nil
}

func (u *ClientUsecase) ListClients(ctx context.Context) ([]model.Client, error) {
	clients, err := u.clientRepo.List(ctx)
	if err != nil {
		return []model.Client{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return clients, nil
}

func (u *ClientUsecase) GetClient(ctx context.Context, id int64) (model.Client, error) {
	c, err := u.clientRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Client{}, NewHTTPError(http.StatusNotFound, "client not found")
	}
	if err != nil {
		return model.Client{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *ClientUsecase) CreateClient(ctx context.Context, in ClientInput) (model.Client, error) {
	if err := in.validate(); err != nil {
		return model.Client{}, err
	}

	c, err := u.clientRepo.Create(ctx, model.Client{
		Name:           strings.TrimSpace(in.Name),
		Email:          in.Email,
		Phone:          in.Phone,
		CreditLimit:    in.CreditLimit,
		CurrentBalance: in.CurrentBalance,
	})
	if err != nil {
		return model.Client{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *ClientUsecase) UpdateClient(ctx context.Context, id int64, in ClientInput) (model.Client, error) {
	if err := in.validate(); err != nil {
		return model.Client{}, err
	}

	updated, err := u.clientRepo.Update(ctx, model.Client{
		ID:             id,
		Name:           strings.TrimSpace(in.Name),
		Email:          in.Email,
		Phone:          in.Phone,
		CreditLimit:    in.CreditLimit,
		CurrentBalance: in.CurrentBalance,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Client{}, NewHTTPError(http.StatusNotFound, "client not found")
	}
	if err != nil {
		return model.Client{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return updated, nil
}

func (u *ClientUsecase) DeleteClient(ctx context.Context, id int64) error {
	err := u.clientRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "client not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 残高に符号付きamountを加算する。限度額を超えるなら拒否。
// 読み→加算→書きを同じトランザクションで行う。
func (u *ClientUsecase) UpdateBalance(ctx context.Context, id int64, amount int64) (model.Client, error) {
	var updated model.Client

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Clients().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "client not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		c.CurrentBalance += amount
		if c.CurrentBalance > c.CreditLimit {
			return NewHTTPError(http.StatusBadRequest, "credit limit exceeded")
		}
		if c.CurrentBalance < 0 {
			return NewHTTPError(http.StatusBadRequest, "balance must not be negative")
		}

		updated, err = r.Clients().Update(ctx, c)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return model.Client{}, err
	}
	return updated, nil
}

func (u *ClientUsecase) ListExceededCredit(ctx context.Context) ([]model.Client, error) {
	clients, err := u.clientRepo.ListExceededCredit(ctx)
	if err != nil {
		return []model.Client{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return clients, nil
}
